// Package commit applies collected shadow tree effects to a surface.
//
// A Committer turns Placement records into created and inserted surface
// nodes, Update records into attribute and listener changes, Deletion
// records into depth-first unmounts, and relocates keyed nodes that moved
// among their siblings. Component lifecycle hooks are driven through
// shadow.Scheduler as the commit reaches each component.
package commit
