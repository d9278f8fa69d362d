package plugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
)

// Install installs the plugin in params["name"], or every plugin recorded
// in package.json when no name is given.
func Install(ctx context.Context, p *props.Props, params action.Params) error {
	m := InstallActions()
	msgs := action.Messages{Start: "Installing plugin..."}
	if params.String("name") == "" {
		m = UnattendedActions()
		msgs.Start = "Installing plugins..."
	}
	_, err := action.Generate(ctx, "plugin-install", m, &action.Options{Params: params, Props: p}, msgs)
	return err
}

// Publish authenticates and publishes the plugin in params["path"].
func Publish(ctx context.Context, p *props.Props, params action.Params) error {
	m := action.Merge(AuthActions(), PublishActions())
	_, err := action.Generate(ctx, "plugin-publish", m, &action.Options{Params: params, Props: p},
		action.Messages{Start: "Publishing...", Success: "Published!"})
	return canceled(p, err, "Publish canceled!")
}

// Auth logs in to the registry and stores the session token.
func Auth(ctx context.Context, p *props.Props, params action.Params) error {
	params.Set(ParamLogin, true)
	_, err := action.Generate(ctx, "auth", AuthActions(), &action.Options{Params: params, Props: p},
		action.Messages{Start: "Authenticating...", Success: "Authenticated!"})
	return canceled(p, err, "Authentication canceled!")
}

func canceled(p *props.Props, err error, msg string) error {
	if errors.Is(err, prompt.ErrCanceled) {
		fmt.Fprintln(p.Out, msg)
		return nil
	}
	return err
}
