package version

var RevisionFrom = revisionFrom
