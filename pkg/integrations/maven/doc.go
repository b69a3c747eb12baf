// Package maven reads published versions from a Maven repository.
//
// # Overview
//
// Maven repositories expose every artifact as a directory whose
// subdirectories are the published versions. The client downloads that
// listing (https://repo1.maven.org/maven2/ by default) and turns the linked
// version directories into a [version.Index].
//
// # Usage
//
//	client, err := maven.NewClient(maven.WithTimeout(5 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	index, err := client.FetchIndex(ctx, "com.google.guava", "guava")
//	if err != nil {
//	    log.Printf("unavailable: %v", err)
//	    return
//	}
//	latest, _ := index.Latest("32")
//
// # Listing Format
//
// The listing is HTML. Every <a href> target is matched against the version
// token pattern of [version.Extract]; the first match in the target is the
// version. Targets such as "../" or "maven-metadata.xml" carry no version and
// are dropped.
//
// # Transport
//
// Requests go through a [Fetcher]. The default is an [integrations.Client]
// with a bounded timeout. There are no retries and no caching; each call to
// [Client.FetchIndex] issues exactly one request.
//
// [integrations.Client]: github.com/matzehuels/pomcheck/pkg/integrations.Client
// [version.Index]: github.com/matzehuels/pomcheck/pkg/version.Index
// [version.Extract]: github.com/matzehuels/pomcheck/pkg/version.Extract
package maven
