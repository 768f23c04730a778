// Package server exposes the packaging pipeline as a small web service: a form
// to submit a URL, an endpoint that returns the finished archive, and a health
// check reporting the external tools the pipeline needs.
package server
