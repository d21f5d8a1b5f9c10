package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leilabk/shelfctl/internal/models"
)

type loginState struct {
	inputs [2]textinput.Model
	focus  int
}

func newLoginState() *loginState {
	s := &loginState{}

	username := textinput.New()
	username.Prompt = ""
	username.Placeholder = "Username"
	username.CharLimit = 80

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "Password"
	password.CharLimit = 80
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	s.inputs[0] = username
	s.inputs[1] = password
	return s
}

func (s *loginState) focusCmd() tea.Cmd {
	return s.inputs[0].Focus()
}

func (s *loginState) setFocus(i int) {
	s.focus = ((i % 2) + 2) % 2
	for n := range s.inputs {
		s.inputs[n].Blur()
	}
	s.inputs[s.focus].Focus()
}

func (s *loginState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *loginState) credentials() models.UserLogin {
	return models.UserLogin{
		Username: strings.TrimSpace(s.inputs[0].Value()),
		Password: s.inputs[1].Value(),
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next), msg.String() == "down":
		m.login.setFocus(m.login.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev), msg.String() == "up":
		m.login.setFocus(m.login.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		creds := m.login.credentials()
		if creds.Username == "" || creds.Password == "" {
			m.loginErr = "Username and password are required."
			return m, nil
		}
		return m, m.submitLogin(creds)
	}

	return m, m.login.update(msg)
}

func (m *Model) renderLogin() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")

	labels := [2]string{"Username", "Password"}
	for i, in := range m.login.inputs {
		label := labels[i]
		if i == m.login.focus {
			label = focusedStyle.Render(label)
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.loginErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.loginErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Next, m.keys.Enter}))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("ctrl+c quit"))

	return frameStyle.Render(b.String())
}
