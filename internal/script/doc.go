// Package script runs sandboxed Lua against a document.
//
// An Engine binds a Lua state to one document. Each Run executes a
// script inside a single transaction exposed through the global doc
// table:
//
//	eng, err := script.New(d)
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	change, err := eng.Run(`
//	    doc.insertText{ text = "Hello", path = "p1.content", offset = 0 }
//	`)
//
// A script error, panic or timeout discards every staged change; on
// success the transaction commits and Run returns the change event.
//
// The Lua state opens only the base, table, string and math libraries,
// and the code-loading functions are removed, so scripts cannot reach
// the file system, the network or the process environment.
package script
