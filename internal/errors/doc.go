// Package errors provides structured, actionable error messages for the wand
// command line tool and preview server.
//
// Every error carries a code (e.g. "W201") that maps to a category, a short
// message and a longer explanation. Errors can point at a location inside a
// document and suggest a fix.
//
// # Error Categories
//
//   - config: wand.json and environment problems
//   - document: markup documents that fail to decode
//   - server: preview server failures
//   - publish: upload failures
//   - cli: bad command line usage
//
// # Usage
//
//	err := errors.New("W201").
//	    WithLocation("site/index.json", "root.content[2]").
//	    WithSuggestion("Give every node a \"tag\" member")
//
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR W201: Invalid document
//	//
//	//   site/index.json: root.content[2]
//	//
//	//   Hint: Give every node a "tag" member
package errors
