package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	suggestrpc "retrolog/internal/modules/suggest/adapter/out/rpc"
	"retrolog/internal/modules/suggest/domain"
	suggestout "retrolog/internal/modules/suggest/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const defaultStartTimeout = 3 * time.Second

type GRPCHost struct {
	callTimeout time.Duration
}

// NewGRPCHost launches provider binaries per call. callTimeout bounds every
// RPC unless the caller's context already carries a deadline.
func NewGRPCHost(callTimeout time.Duration) suggestout.Host {
	if callTimeout <= 0 {
		callTimeout = 5 * time.Second
	}
	return &GRPCHost{callTimeout: callTimeout}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Suggest(ctx context.Context, manifest domain.Manifest, request domain.Request) ([]domain.Suggestion, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	response, err := client.Suggest(callCtx, &suggestrpc.SuggestRequest{
		Kind:        request.Kind,
		UserID:      request.UserID,
		MetricsJSON: request.MetricsJSON,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("suggest: %w", err)
	}
	out := make([]domain.Suggestion, 0, len(response.Suggestions))
	for _, s := range response.Suggestions {
		out = append(out, domain.Suggestion{Title: s.Title, Description: s.Description, Plan: s.Plan})
	}
	return out, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (suggestrpc.SuggestionProviderClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  suggestrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          suggestrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(suggestrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(suggestrpc.SuggestionProviderClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.callTimeout)
}
