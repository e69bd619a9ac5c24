// Package shadow implements the persistent shadow tree and the algorithms
// that move it from one render to the next.
//
// A render pass runs in four steps:
//
//  1. Build turns a structural description into a candidate tree of Nodes,
//     classifying each as component, element or text, folding a component's
//     children into its properties and validating keyed sibling groups.
//  2. Reconciler.Reconcile walks the previous tree and the candidate in
//     lock-step, carries live state (handles, instances, listeners) forward,
//     and tags nodes with an Effect: Placement, Update or Deletion.
//     Components are rendered as they are reached, so their output is diffed
//     against what they produced last time.
//  3. Collect flattens a tree into an ordered list of Records, one per tagged
//     node, and clears the tags.
//  4. The committer applies the records to a surface while a Scheduler fires
//     Mounted and Updated hooks bottom-up.
//
// # Ownership
//
// A parent owns its Children. Parent is a non-owning back-reference used
// only to look up the nearest surface handle or attribute; destruction
// always starts at a parent and recurses downward.
package shadow
