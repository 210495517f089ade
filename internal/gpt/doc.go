// Package gpt drives SNAP's Graph Processing Tool.
//
// An Engine is bound to one gpt executable, verified when the Engine is
// created by probing its usage banner. Run maps a graph onto one or many
// inputs. Each input is processed on its own, strictly in sequence, inside a
// transient directory that is removed whatever the outcome:
//
//	Naming → Staging → Normalizing → Serializing → Invoking → Succeeded | Failed
//
// Staging downloads remote inputs (see package fetch). Normalizing points gpt
// at the manifest of Sentinel-3 products, unpacking *S3*.zip archives first.
// Serializing writes the graph as graph.xml and Invoking runs
//
//	gpt <tmp>/graph.xml -Ssource=<input> [-S<name>=<value>...] -t <output> -f <format>
//
// A failing input is recorded in its Outcome and the batch moves on; only
// problems that would affect every input (bad options, an empty graph, an
// unusable output or temp folder, cancellation) stop the batch.
package gpt
