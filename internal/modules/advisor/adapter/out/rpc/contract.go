package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "advisor"
	serviceName       = "paymind.advisor.v1.Advisor"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodAdvise      = "/" + serviceName + "/Advise"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PAYMIND_ADVISOR",
	MagicCookieValue: "paymind",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type AppHours struct {
	App   string  `json:"app"`
	Hours float64 `json:"hours"`
}

type AdviseRequest struct {
	UserID        string     `json:"user_id"`
	AsOf          string     `json:"as_of"`
	WeeklyUsage   []AppHours `json:"weekly_usage"`
	WeeklyHours   float64    `json:"weekly_hours"`
	WeeklyLoss    float64    `json:"weekly_loss"`
	ReferenceRate float64    `json:"reference_rate"`
}

type Suggestion struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	App             string  `json:"app,omitempty"`
	CurrentCost     float64 `json:"current_cost"`
	PotentialSaving float64 `json:"potential_saving"`
	Difficulty      string  `json:"difficulty"`
}

type AdviseResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type AdvisorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Advise(ctx context.Context, in *AdviseRequest) (*AdviseResponse, error)
}

type AdvisorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Advise(ctx context.Context, in *AdviseRequest) (*AdviseResponse, error)
}

type advisorClient struct {
	conn *grpc.ClientConn
}

func NewAdvisorClient(conn *grpc.ClientConn) AdvisorClient {
	return &advisorClient{conn: conn}
}

func (c *advisorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *advisorClient) Advise(ctx context.Context, in *AdviseRequest) (*AdviseResponse, error) {
	out := &AdviseResponse{}
	if err := c.conn.Invoke(ctx, methodAdvise, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterAdvisorServer(server grpc.ServiceRegistrar, impl AdvisorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AdvisorServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "Advise", Handler: unary(methodAdvise, impl.Advise)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/advisor-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AdvisorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAdvisorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAdvisorClient(conn), nil
}

func PluginMap(impl AdvisorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
