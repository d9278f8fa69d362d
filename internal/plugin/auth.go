package plugin

import (
	"context"
	"fmt"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/registry"
)

// Param keys shared by the auth and publish fragments.
const (
	ParamSessionToken = "sessionToken"
	ParamUser         = "user"
	// ParamLogin forces a fresh login even when a session token is stored.
	ParamLogin = "login"
)

// sessionKey is the home config key holding the registry session token.
const sessionKey = "registry.session_token"

// AuthActions returns the sequence that makes sure the registry session is
// valid: reuse the stored token or log in, then confirm who it belongs to.
func AuthActions() *action.Map {
	return action.NewMap(
		action.Entry{Name: "token", Step: token},
		action.Entry{Name: "whoami", Step: whoami},
	)
}

func newClient(opts *action.Options) (*registry.Client, error) {
	p := opts.Props
	cfg, err := p.Config.Registry()
	if err != nil {
		return nil, err
	}
	c := registry.New(p.HTTP, cfg)
	if t := opts.Params.String(ParamSessionToken); t != "" {
		c = c.WithSessionToken(t)
	}
	return c, nil
}

func token(ctx context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	stored := ""
	if p.Settings != nil {
		stored = p.Settings.GetString(sessionKey)
	}
	if stored == "" {
		stored = p.Config.String(sessionKey)
	}
	if stored != "" && !opts.Params.Bool(ParamLogin) {
		opts.Params.Set(ParamSessionToken, stored)
		return "stored", nil
	}

	p.Spinner.Stop()
	p.Prompt.SetOverride(map[string]any{
		"username": opts.Params.String("username"),
		"password": opts.Params.String("password"),
	})
	p.Prompt.Start()
	creds, err := p.Prompt.Get(prompt.Schema{Properties: []prompt.Property{
		{Name: "username", Description: "Username:", Required: true},
		{Name: "password", Description: "Password:", Kind: prompt.Password, Required: true},
	}})
	p.Prompt.Stop()
	if err != nil {
		return nil, err
	}
	p.Spinner.Start("Authenticating...")

	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	user, err := client.Login(ctx, fmt.Sprint(creds["username"]), fmt.Sprint(creds["password"]))
	if err != nil {
		return nil, err
	}
	opts.Params.Set(ParamSessionToken, user.SessionToken)
	if p.Settings != nil {
		if err := p.Settings.Set(sessionKey, user.SessionToken); err != nil {
			return nil, err
		}
	}
	return "login", nil
}

func whoami(ctx context.Context, opts *action.Options) (any, error) {
	opts.Message("Checking session...")
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	user, err := client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w (run `auth` to log in again)", err)
	}
	opts.Params.Set(ParamUser, user.Username)
	return user.Username, nil
}
