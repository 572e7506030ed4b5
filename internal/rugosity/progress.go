package rugosity

// ProgressFunc receives checkpoint notifications while a processor runs:
// done units complete out of total. The sequential processor reports one
// unit per grid row; the chunked processor reports one unit per tile.
// Callbacks are invoked from the processing goroutines one at a time,
// so implementations need no locking of their own.
type ProgressFunc func(done, total int)
