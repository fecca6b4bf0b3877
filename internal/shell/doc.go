// Package shell is the interactive address book prompt.
//
// The shell reads one command per line:
//
//	list     print every contact
//	add      prompt for a new contact and append it to the book file
//	find     search by phone number, name or id
//	delete   remove a contact by id and rewrite the book file
//	recent   contacts returned by recent finds, newest first
//	help     print the command list
//	exit     leave the shell (also: quit)
//
// Only the command loop touches the book. When a watcher is configured it
// runs alongside the loop under one errgroup; its change events are handled
// by the loop between commands, reloading the book from disk.
package shell
