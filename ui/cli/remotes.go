// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/toeirei/ircloner/internal/db"
	"github.com/toeirei/ircloner/internal/i18n"
	"github.com/toeirei/ircloner/internal/ui"
)

func (s *Shell) createRemote(ctx context.Context) error {
	fmt.Fprintln(s.Out, "\n"+ui.Title(i18n.T("remote.create_title")))

	name, err := s.Prompt.ReadLine(i18n.T("remote.name_prompt"))
	if err != nil {
		return err
	}
	if name == "" {
		s.errorf(i18n.T("remote.name_empty"))
		return nil
	}
	comment, err := s.Prompt.ReadLine(i18n.T("remote.comment_prompt"))
	if err != nil {
		return err
	}

	id, err := s.Store.CreateRemote(ctx, name, comment)
	switch {
	case errors.Is(err, db.ErrDuplicateName):
		s.errorf(i18n.T("remote.duplicate", name))
	case errors.Is(err, db.ErrEmptyName):
		s.errorf(i18n.T("remote.name_empty"))
	case err != nil:
		s.errorf(i18n.T("remote.create_failed", err))
	default:
		fmt.Fprintln(s.Out, ui.Success(i18n.T("remote.created", name, id)))
	}
	return nil
}

func (s *Shell) listRemotes(ctx context.Context) {
	fmt.Fprintln(s.Out, "\n"+ui.Title(i18n.T("remote.list_title")))

	remotes, err := s.Store.ListRemotes(ctx)
	if err != nil {
		s.errorf(i18n.T("remote.list_failed", err))
		return
	}
	if len(remotes) == 0 {
		fmt.Fprintln(s.Out, i18n.T("remote.none"))
		return
	}

	w := tabwriter.NewWriter(s.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", i18n.T("remote.col_id"), i18n.T("remote.col_name"), i18n.T("remote.col_comment"))
	for _, r := range remotes {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Name, r.Comment)
	}
	w.Flush()
}
