package pom

import (
	"encoding/xml"
	"strings"
)

// Namespace is the XML namespace of Maven 4.0.0 descriptors.
const Namespace = "http://maven.apache.org/POM/4.0.0"

// Dependency is one dependency or build plugin declared in a descriptor.
//
// Version always holds the resolved literal, or is empty when the descriptor
// leaves the version to dependency management. VersionVariable names the
// property the version was taken from and is empty for literal versions.
type Dependency struct {
	GroupID         string `json:"group_id"`
	ArtifactID      string `json:"artifact_id"`
	VersionVariable string `json:"version_variable,omitempty"`
	Version         string `json:"version"`
}

// Coordinate returns the "groupId:artifactId" string for d.
func (d Dependency) Coordinate() string {
	return d.GroupID + ":" + d.ArtifactID
}

type pomProject struct {
	XMLName      xml.Name
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Parent       *pomParent      `xml:"parent"`
	Properties   []pomProperties `xml:"properties"`
	Dependencies []pomEntries    `xml:"dependencies"`
	Build        []pomBuild      `xml:"build"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// pomProperties holds the children of one <properties> block. Every child
// element becomes a property named after its local name.
type pomProperties struct {
	Entries []pomProperty `xml:",any"`
}

type pomProperty struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// pomEntries holds the children of a <dependencies> or <plugins> block.
type pomEntries struct {
	Entries []pomDependency `xml:",any"`
}

type pomBuild struct {
	Plugins []pomEntries `xml:"plugins"`
}

// pomDependency uses pointers so an absent element can be told apart from an
// empty one.
type pomDependency struct {
	GroupID    *string `xml:"groupId"`
	ArtifactID *string `xml:"artifactId"`
	Version    *string `xml:"version"`
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
