package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/shulechat/client/actions"
	"github.com/shulechat/client/api"
	"github.com/shulechat/client/auth"
	"github.com/shulechat/client/chat"
	"github.com/shulechat/client/drafts"
	"github.com/shulechat/client/route"
	"github.com/shulechat/client/ui"
	"github.com/shulechat/client/updates"
)

var chatMessage string

var chatCmd = &cobra.Command{
	Use:   "chat [conversation-id]",
	Short: "Open a conversation with the assistant",
	Long: `Open a conversation with the assistant.

Without an argument a new draft conversation starts; pass a conversation id
to resume one. Inside the session, plain lines are sent to the assistant and
slash commands control the client:

  /action <n>   Run the n-th action of the latest reply's blocks
  /retry        Reload the conversation after a load failure
  /new          Start a fresh draft conversation
  /quit         Leave the session`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	chatID := route.DraftID
	if len(args) == 1 {
		chatID = args[0]
	}

	if redirect, _, ok := auth.RequireAuth(a.store.Snapshot(), route.Chat(chatID)); !ok {
		return fmt.Errorf("not signed in (wanted %s); run 'shulechat login'", redirect)
	}
	if a.store.ActiveSchoolID() == "" {
		return errors.New("no active school selected; run 'shulechat schools use <id>'")
	}

	sess := &chatSession{
		app: a,
		out: cmd.OutOrStdout(),
		in:  bufio.NewReader(cmd.InOrStdin()),
	}
	return sess.run(cmd.Context(), chatID, chatMessage)
}

// chatSession hosts the controller for one interactive run. It doubles as
// the controller's navigator and the dispatcher's opener and confirmer.
type chatSession struct {
	app *app
	out io.Writer
	in  *bufio.Reader

	controller *chat.Controller
	dispatcher *actions.Dispatcher

	mu        sync.Mutex
	chatID    string
	rendered  int
	loginNext string // set when a redirect demanded re-authentication
}

func (s *chatSession) run(ctx context.Context, chatID, firstMessage string) error {
	s.chatID = chatID

	broadcaster, err := updates.NewBroadcaster(s.app.cfg.DataDir)
	if err != nil {
		return err
	}
	draftStore, err := drafts.NewStore(s.app.cfg.DataDir)
	if err != nil {
		return err
	}

	s.controller = chat.NewController(s.app.client, s, broadcaster, draftStore)
	s.dispatcher = actions.NewDispatcher(s.controller, s, s.app.client, s, s)

	watcher := updates.NewWatcher(s.app.cfg.DataDir, s.currentChatID, func(id string) {
		s.controller.Load(ctx, id)
		s.renderNew()
	})
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("start update watcher: %w", err)
	}
	defer watcher.Stop()

	s.app.log.Info("chat session started", "chatId", chatID)

	s.controller.Load(ctx, chatID)
	if firstMessage != "" {
		s.controller.Send(ctx, firstMessage)
	}
	s.renderNew()

	for {
		if next := s.loginRequired(); next != "" {
			return fmt.Errorf("session expired (wanted %s); run 'shulechat login'", next)
		}

		fmt.Fprint(s.out, "> ")
		line, err := s.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/new":
			s.setChatID(route.DraftID)
			s.resetRendered()
			s.controller.Load(ctx, route.DraftID)
		case line == "/retry":
			s.resetRendered()
			s.controller.Load(ctx, s.currentChatID())
		case strings.HasPrefix(line, "/action"):
			s.runAction(ctx, line)
		case strings.HasPrefix(line, "/"):
			fmt.Fprintf(s.out, "unknown command %s\n", line)
			continue
		default:
			s.controller.Send(ctx, line)
		}

		s.renderNew()
		if msg := s.controller.LoadError(); msg != "" {
			fmt.Fprintf(s.out, "%s (/retry or /new)\n", msg)
		}
	}
}

// Replace implements route.Navigator. A login route ends the session; a
// chat route retargets it, which is how redirect-on-create lands on the
// canonical conversation id. Being sent back to the draft route (the
// conversation no longer exists) remounts as an empty draft.
func (s *chatSession) Replace(path string) {
	if strings.HasPrefix(path, route.LoginPath) {
		s.mu.Lock()
		s.loginNext = route.Next(path)
		s.mu.Unlock()
		return
	}
	id := route.ChatID(path)
	if id == "" {
		return
	}
	s.setChatID(id)
	if id == route.DraftID {
		fmt.Fprintln(s.out, "conversation not found; starting a new chat")
		s.resetRendered()
		s.controller.Load(context.Background(), route.DraftID)
	}
}

// Push implements route.Navigator. Sections outside the chat live in the
// web app, so the client hands over a link instead of navigating.
func (s *chatSession) Push(path string) {
	ui.RenderLink(s.out, s.app.cfg.ServerURL+path)
}

// Open implements actions.Opener for download actions.
func (s *chatSession) Open(endpoint string) error {
	ui.RenderLink(s.out, s.app.cfg.ServerURL+endpoint)
	return nil
}

// Confirm implements actions.Confirmer.
func (s *chatSession) Confirm(prompt string) bool {
	if prompt == "" {
		prompt = "Are you sure?"
	}
	fmt.Fprintf(s.out, "%s [y/N] ", prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (s *chatSession) currentChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatID
}

func (s *chatSession) setChatID(id string) {
	s.mu.Lock()
	s.chatID = id
	s.mu.Unlock()
}

func (s *chatSession) loginRequired() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginNext
}

func (s *chatSession) resetRendered() {
	s.mu.Lock()
	s.rendered = 0
	s.mu.Unlock()
}

// renderNew prints transcript entries added since the last render. A
// shrunken transcript means a reload replaced it; start over.
func (s *chatSession) renderNew() {
	msgs := s.controller.Messages()

	s.mu.Lock()
	from := s.rendered
	if len(msgs) < from {
		from = 0
	}
	s.rendered = len(msgs)
	s.mu.Unlock()

	if from == 0 && len(msgs) > 0 {
		if conv, ok := s.controller.Conversation(); ok && conv.Title != "" {
			fmt.Fprintf(s.out, "-- %s --\n", conv.Title)
		}
	}
	for _, m := range msgs[from:] {
		fmt.Fprintln(s.out, ui.RenderMessage(m))
	}
}

func (s *chatSession) runAction(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Fprintln(s.out, "usage: /action <n>")
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Fprintln(s.out, "usage: /action <n>")
		return
	}

	acts := latestActions(s.controller.Messages())
	if n < 1 || n > len(acts) {
		fmt.Fprintf(s.out, "no action %d; the latest reply has %d\n", n, len(acts))
		return
	}
	s.dispatcher.Dispatch(ctx, acts[n-1])
}

// latestActions collects the actions of the most recent assistant message
// that carries blocks.
func latestActions(msgs []api.DisplayMessage) []api.Action {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Role != api.RoleAssistant || len(m.Blocks) == 0 {
			continue
		}
		var acts []api.Action
		for _, b := range m.Blocks {
			acts = append(acts, b.Actions...)
		}
		return acts
	}
	return nil
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send this message as soon as the conversation opens")
	rootCmd.AddCommand(chatCmd)
}
