// Package corpus finds the documents of a corpus on disk.
//
// A corpus is a directory tree. [Discover] walks it and returns every file
// with a document extension (".md" by default), skipping hidden entries and
// entries whose name ends in "_deleted" together with everything below them.
// [Load] then reads each file's front-matter block into a
// [metadata.Record]; files without front matter are not documents.
//
// [Watch] reports changes to the same set of files so a graph can be rebuilt
// while the corpus is being edited.
package corpus
