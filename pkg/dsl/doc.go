/*
Package dsl provides a fluent Go API for building intake decision trees in code.

It is an alternative to writing a YAML or JSON tree and produces a validated
in-memory loader.

	loader, err := dsl.New().
		Add("start").Ask("What happened?").
			Option("Online fraud", "fraud", "fraud").
			Other().
		Add("fraud").Ask("Collect the bank statement.").
			Checklist("Bank statement", "Transaction IDs").
			NewCase().
		Add("aiChatStart").Ask("Ask the assistant.").
		Build()
*/
package dsl
