package model

// Package model defines domain data structures shared by the pipeline, the HTTP
// layer and the CLI: download requests and their option enums, job results,
// and progress events. Values are plain data with validation helpers.
