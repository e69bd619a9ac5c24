// Package errors provides the coded, categorized errors raised by the
// rendering engine.
//
// Every failure the engine can report belongs to one of a small set of
// categories:
//   - config: the application cannot start (missing render callback,
//     unresolvable mount target, invalid project file)
//   - validation: a render pass produced a description that cannot be
//     turned into a shadow tree (missing or duplicate keys, unrenderable tags)
//   - lookup: an internal bookkeeping contract was violated (removing a
//     listener that was never attached)
//
// # Error Codes
//
// Each error carries a code (e.g. "E201") that maps to a registered template
// with a short message and a longer explanation:
//
//	err := errors.New("E202").
//	    WithPath("root > ul > li").
//	    WithDetail(`key "3" is used twice`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E202: Duplicate key in sibling group
//	//
//	//   at root > ul > li
//	//
//	//   key "3" is used twice
package errors
