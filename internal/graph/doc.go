// Package graph builds the XML processing graphs consumed by SNAP gpt.
//
// # Model
//
// A Graph is a strict linear chain of steps. Steps are appended with AddStep
// and can never be removed, reordered or re-linked. Each call produces one
// <node> in the document:
//
//	<graph>
//	  <version>1.0</version>
//	  <node id="Subset0">
//	    <operator>Subset</operator>
//	    <sources>
//	      <source>${source}</source>
//	    </sources>
//	    <parameters>...</parameters>
//	  </node>
//	  <node id="Reproject0">
//	    <operator>Reproject</operator>
//	    <sources>
//	      <sourceProduct refid="Subset0"/>
//	    </sources>
//	    <parameters>...</parameters>
//	  </node>
//	</graph>
//
// The first node reads the ${source} placeholder, which the engine binds to
// the input product with -Ssource=<path>. Every later node references the node
// added immediately before it.
//
// # Bookkeeping
//
// Besides the document a Graph tracks:
//   - node ids, generated as {operator}{n} where n counts the existing ids that
//     contain the operator name as a substring;
//   - the output suffix, one "_"+lower(token) per step that declares a token;
//   - additional sources (e.g. collocateWith), aggregated by logical name in
//     insertion order. A later binding with the same name replaces the value of
//     the earlier one and is logged as a warning.
//
// A Graph is not safe for concurrent mutation. The engine only reads it.
package graph
