// Package manifest reads and writes the dependency manifest.
//
// # Format
//
// The manifest records every extracted dependency keyed by groupId, then
// artifactId:
//
//	{
//	  "com.google.guava": {
//	    "guava": {
//	      "name": "guava.version",
//	      "version": "32.1.3-jre"
//	    }
//	  },
//	  "junit": {
//	    "junit": {
//	      "name": null,
//	      "version": "4.13.2"
//	    }
//	  }
//	}
//
// "name" is the property the version was taken from, or null for a literal
// version. Keys are written sorted with two-space indentation so manifests
// diff cleanly.
//
// # Uses
//
// A manifest is produced by the extract command and consumed two ways: the
// check command advises every recorded coordinate, and the replace command
// turns it into a property name to version map ([Manifest.Properties]) that
// is written back into descriptors.
package manifest
