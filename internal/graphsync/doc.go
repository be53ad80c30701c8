// Package graphsync reconciles an editable graph with its document.
//
// Engine.Synchronize diffs the document's build page against the editable
// graph and patches the editable graph until both hold the same nodes,
// connections and comments, with every pin shaped after its class and every
// member cache holding the document's normalized page defaults. Running it
// again without touching the document changes nothing.
//
// A pass never fails. Nodes whose class cannot be resolved become broken
// placeholders, and connections that cannot be honoured are left out of the
// editable graph. Both are reported as warnings in the Report.
package graphsync
