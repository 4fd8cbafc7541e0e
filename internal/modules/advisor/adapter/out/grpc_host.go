package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	advisorrpc "paymind/internal/modules/advisor/adapter/out/rpc"
	"paymind/internal/modules/advisor/domain"
	advisorout "paymind/internal/modules/advisor/port/out"
	apperrors "paymind/internal/platform/errors"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct {
	logger hclog.Logger
}

// NewGRPCHost launches advisors as go-plugin children. A nil logger discards plugin output.
func NewGRPCHost(logger hclog.Logger) advisorout.Host {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
	}
	return &GRPCHost{logger: logger}
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

	callCtx, cancel := callContext(ctx, manifest.Timeout(defaultCallTimeout))
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Metadata{}, fmt.Errorf("%w: %s metadata", domain.ErrPluginTimeout, manifest.Name)
		}
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Description: meta.Description}, nil
}

func (h *GRPCHost) Advise(ctx context.Context, manifest domain.Manifest, req domain.Request) ([]domain.Suggestion, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	usage := make([]advisorrpc.AppHours, 0, len(req.WeeklyUsage))
	for _, app := range req.WeeklyUsage {
		usage = append(usage, advisorrpc.AppHours{App: app.App, Hours: app.Hours})
	}
	callCtx, cancel := callContext(ctx, manifest.Timeout(defaultCallTimeout))
	defer cancel()
	response, err := client.Advise(callCtx, &advisorrpc.AdviseRequest{
		UserID:        req.UserID,
		AsOf:          req.AsOf.Format(time.DateOnly),
		WeeklyUsage:   usage,
		WeeklyHours:   req.WeeklyHours,
		WeeklyLoss:    req.WeeklyLoss,
		ReferenceRate: req.ReferenceRate,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s advise", domain.ErrPluginTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("advise: %w", err)
	}
	out := make([]domain.Suggestion, 0, len(response.Suggestions))
	for _, s := range response.Suggestions {
		out = append(out, domain.Suggestion{
			ID:              s.ID,
			Title:           s.Title,
			Description:     s.Description,
			App:             s.App,
			CurrentCost:     s.CurrentCost,
			PotentialSaving: s.PotentialSaving,
			Difficulty:      s.Difficulty,
		})
	}
	return out, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (advisorrpc.AdvisorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  advisorrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          advisorrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("%w: start advisor %s: %v", apperrors.ErrPluginUnavailable, manifest.Name, err)
	}
	raw, err := rpcClient.Dispense(advisorrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense advisor %s: %w", manifest.Name, err)
	}
	typed, ok := raw.(advisorrpc.AdvisorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("advisor rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
