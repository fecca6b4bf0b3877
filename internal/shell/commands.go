package shell

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Aman-CERP/addrbook/internal/codec"
	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/persist"
)

type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     func(s *Shell, ctx context.Context, args []string) error
}

// commands is the shell's command table in help order.
var commands []command

func init() {
	commands = []command{
		{name: "list", help: "List all contacts", run: (*Shell).list},
		{name: "add", help: "Add a contact", run: (*Shell).add},
		{name: "find", help: "Find contacts by phone number, name or id", run: (*Shell).find},
		{name: "delete", usage: "delete [id]", help: "Delete a contact", run: (*Shell).delete},
		{name: "recent", help: "Show recently found contacts", run: (*Shell).showRecent},
		{name: "help", help: "Show this help", run: (*Shell).help},
		{name: "exit", aliases: []string{"quit"}, help: "Leave the shell", run: (*Shell).exit},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, alias := range c.aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return command{}, false
}

func (s *Shell) list(_ context.Context, _ []string) error {
	return s.out.Contacts(s.book.List())
}

func (s *Shell) add(ctx context.Context, _ []string) error {
	s.out.Println("Enter contact details:")

	var answers [4]string
	for i, prompt := range []string{"First name: ", "Last name: ", "Address: ", "Phone number: "} {
		answer, err := s.ask(ctx, prompt)
		if err != nil {
			return err
		}
		answers[i] = answer
	}

	if !s.syncWithDisk() {
		s.out.Error("Contact not added; fix the book file and try again.")
		return nil
	}

	c := s.book.NewContact(answers[0], answers[1], answers[2], answers[3])
	if err := codec.Check(c); err != nil {
		s.out.Error(err.Error())
		return nil
	}

	s.book.Add(c)
	if err := persist.AppendWithRetry(ctx, s.path, c, s.retry); err != nil {
		s.logger.Error("append failed",
			slog.Uint64("id", uint64(c.ID)),
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		s.out.Warningf("Contact %d saved in memory but not on disk: %s", c.ID, err.Error())
		return nil
	}
	s.markWritten()

	s.logger.Info("contact added", slog.Uint64("id", uint64(c.ID)))
	s.out.Success("Contact added successfully!")
	return nil
}

func (s *Shell) find(ctx context.Context, _ []string) error {
	s.out.Println("Search by:")
	s.out.Println("1. Phone number")
	s.out.Println("2. Name")
	s.out.Println("3. ID")

	choice, err := s.ask(ctx, "Enter your choice: ")
	if err != nil {
		return err
	}

	var found []contact.Contact
	switch choice {
	case "1":
		phone, err := s.ask(ctx, "Enter phone number: ")
		if err != nil {
			return err
		}
		found = s.book.FindByPhone(phone)
	case "2":
		name, err := s.ask(ctx, "Enter Name: ")
		if err != nil {
			return err
		}
		found = s.book.FindByName(name)
	case "3":
		id, ok, err := s.askID(ctx)
		if err != nil || !ok {
			return err
		}
		if c, exists := s.book.Get(id); exists {
			found = append(found, c)
		}
	default:
		s.out.Println(fmt.Sprintf("Invalid choice: %s", choice))
		return nil
	}

	s.recent.Touch(found...)
	return s.out.Contacts(found)
}

func (s *Shell) delete(ctx context.Context, args []string) error {
	var (
		id  contact.ID
		ok  bool
		err error
	)
	if len(args) > 0 {
		id, ok = s.parseID(args[0])
	} else {
		id, ok, err = s.askID(ctx)
	}
	if err != nil || !ok {
		return err
	}

	if !s.syncWithDisk() {
		s.out.Error("Contact not deleted; fix the book file and try again.")
		return nil
	}

	removed, existed := s.book.Delete(id)
	if !existed {
		s.out.Println(fmt.Sprintf("No contact with ID %d.", id))
		return nil
	}
	s.recent.Forget(id)

	err = errors.Retry(ctx, s.retry, func() error {
		return persist.Save(s.path, s.book)
	})
	if err != nil {
		s.logger.Error("rewrite after delete failed",
			slog.Uint64("id", uint64(id)),
			slog.String("error", err.Error()))
		s.out.Warningf("Contact %d deleted in memory but not on disk: %s", id, err.Error())
		return nil
	}
	s.markWritten()

	s.logger.Info("contact deleted", slog.Uint64("id", uint64(id)))
	s.out.Successf("Deleted %s", removed.FullName())
	return nil
}

func (s *Shell) showRecent(_ context.Context, _ []string) error {
	return s.out.Contacts(s.recent.Contacts(s.book))
}

func (s *Shell) help(_ context.Context, _ []string) error {
	s.out.Println("Commands:")
	for _, c := range commands {
		usage := c.usage
		if usage == "" {
			usage = c.name
		}
		if len(c.aliases) > 0 {
			usage += ", " + strings.Join(c.aliases, ", ")
		}
		s.out.Println(fmt.Sprintf("  %-12s %s", usage, c.help))
	}
	return nil
}

func (s *Shell) exit(_ context.Context, _ []string) error {
	return errQuit
}

// askID prompts for an id. ok is false when the answer was not a valid id;
// the user has already been told.
func (s *Shell) askID(ctx context.Context) (contact.ID, bool, error) {
	answer, err := s.ask(ctx, "Enter ID: ")
	if err != nil {
		return 0, false, err
	}
	id, ok := s.parseID(answer)
	return id, ok, nil
}

func (s *Shell) parseID(text string) (contact.ID, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		s.out.Println(fmt.Sprintf("Invalid ID: %s", text))
		return 0, false
	}
	return contact.ID(n), true
}
