// Package fetch stages remote inputs onto the local filesystem before gpt
// sees them.
//
// The engine asks each configured Fetcher whether it supports an input; the
// first one that does downloads it into the input's transient directory, so
// staged data is removed together with that directory. The S3 fetcher serves
// s3://bucket/key objects and s3://bucket/prefix/ trees (e.g. unpacked .SEN3
// products) from any S3 compatible store.
package fetch
