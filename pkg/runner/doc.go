/*
Package runner drives a conversation from a line-oriented terminal or pipe.

The Runner prints every new transcript entry, the options on offer and the
evidence checklist, then reads one line at a time. In scripted mode a line
picks an option by number, value or label; in assistant mode it is sent as a
free-text question. "exit" or "quit" ends the loop.

	r := runner.New(runner.WithHandler(runner.NewTextHandler(os.Stdin, os.Stdout)))
	if err := r.Run(ctx, conv); err != nil {
		log.Fatal(err)
	}
*/
package runner
