package cli

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/ilohealth/hcilo/internal/ui"
	"github.com/ilohealth/hcilo/pkg/ilo"
)

// Environment variables that skip the credential prompts.
const (
	UsernameEnv = "HCILO_USERNAME"
	PasswordEnv = "HCILO_PASSWORD"
)

// credentialPrompt collects the iLO account once per run.
type credentialPrompt struct {
	in          io.Reader
	out         io.Writer
	defaultUser string
	getenv      func(string) string
	interactive func() bool
	prompt      func(user, pass *string, askUser, askPass bool) error
}

func newCredentialPrompt(in io.Reader, out io.Writer, defaultUser string) *credentialPrompt {
	return &credentialPrompt{
		in:          in,
		out:         out,
		defaultUser: defaultUser,
		getenv:      os.Getenv,
		interactive: func() bool {
			f, ok := in.(*os.File)
			return ok && ui.IsTerminal(f)
		},
		prompt: ui.PromptCredentials,
	}
}

// collect returns the credentials from the environment, a terminal prompt,
// or two lines of piped stdin, in that order of preference per field.
func (p *credentialPrompt) collect() (ilo.Credentials, error) {
	user := p.getenv(UsernameEnv)
	pass := p.getenv(PasswordEnv)
	askUser, askPass := user == "", pass == ""
	if askUser {
		user = p.defaultUser
	}

	if askUser || askPass {
		var err error
		if p.interactive() {
			err = p.prompt(&user, &pass, askUser, askPass)
		} else {
			err = p.readLines(&user, &pass, askUser, askPass)
		}
		if err != nil {
			return ilo.Credentials{}, errors.WrapWithCode(err, errors.ErrAuth,
				"Failed to read iLO credentials",
				fmt.Sprintf("Run in a terminal, or set %s and %s", UsernameEnv, PasswordEnv))
		}
	}

	creds := ilo.Credentials{Username: strings.TrimSpace(user), Password: pass}
	if creds.Username == "" {
		return ilo.Credentials{}, errors.New(errors.ErrAuth,
			"No iLO username given",
			fmt.Sprintf("Enter a username at the prompt or set %s", UsernameEnv))
	}
	if creds.Password == "" {
		return ilo.Credentials{}, errors.New(errors.ErrAuth,
			"No iLO password given",
			fmt.Sprintf("Enter a password at the prompt or set %s", PasswordEnv))
	}
	return creds, nil
}

// readLines reads the missing fields, one per line, from non-terminal stdin.
func (p *credentialPrompt) readLines(user, pass *string, askUser, askPass bool) error {
	r := bufio.NewReader(p.in)
	if askUser {
		fmt.Fprint(p.out, "Username: ")
		line, err := readLine(r)
		if err != nil {
			return err
		}
		if line != "" {
			*user = line
		}
	}
	if askPass {
		fmt.Fprint(p.out, "Password: ")
		line, err := readLine(r)
		if err != nil {
			return err
		}
		*pass = line
	}
	fmt.Fprintln(p.out)
	return nil
}

// readLine returns one line without its terminator. A final line without a
// newline is accepted; EOF before any byte yields "".
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
