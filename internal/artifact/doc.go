// Checks artifacts on disk, backing the pipeline's skip decisions.
//
// A stage is complete exactly when all of its declared artifacts exist on
// disk. There are no marker files and no state database; the build outputs
// themselves are the record.
package artifact
