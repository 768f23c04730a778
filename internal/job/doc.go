// Package job runs the packaging pipeline for one DownloadRequest: working
// area acquisition, download, archiving, the archive size guard and loading
// the archive into memory. Every invocation owns its own working area and
// produces exactly one model.JobResult.
package job
