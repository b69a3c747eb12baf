// Package pom extracts dependency declarations from Maven descriptors.
//
// # Overview
//
// A [Parser] reads a pom.xml and yields one [Dependency] per entry of every
// top-level <dependencies> block, followed by one per entry of every
// <build><plugins> block. Both shapes carry the same groupId/artifactId/version
// structure.
//
//	p := pom.NewParser(pom.WithLogger(logger.Warnf))
//	for dep, err := range p.Parse("pom.xml") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(dep.Coordinate(), dep.Version)
//	}
//
// # Properties
//
// Before anything is yielded the parser collects the descriptor's
// <properties> into a [Properties] map seeded with project.version. A version
// that starts with a ${name} reference is replaced by the property value and
// the name is kept in [Dependency.VersionVariable]. Substitution happens once:
// a property whose value is itself a reference is returned as written.
// Referencing an undefined property ends the descriptor with an error.
//
// # Plugin Groups
//
// Build plugins may omit their groupId. The parser fills it from a fixed
// artifactId to groupId table ([DefaultPluginGroups], replaceable with
// [WithPluginGroups]). When the table has no entry the dependency is yielded
// with an empty GroupID and a warning is logged.
//
// # Discovery
//
// [Discover] expands files and directories into the pom.xml files to parse.
// Both Parse and Discover are lazy: no file is opened before iteration starts,
// and breaking out of a loop stops all further reads.
package pom
