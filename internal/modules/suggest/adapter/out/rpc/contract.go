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
	PluginMapKey      = "retrolog"
	serviceName       = "retrolog.suggest.v1.SuggestionProvider"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodSuggest     = "/" + serviceName + "/Suggest"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "RETROLOG_PLUGIN",
	MagicCookieValue: "retrolog",
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
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type SuggestRequest struct {
	Kind        string `json:"kind"`
	UserID      string `json:"user_id"`
	MetricsJSON string `json:"metrics_json"`
}

type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Plan        []string `json:"plan"`
}

type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type SuggestionProviderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Suggest(ctx context.Context, in *SuggestRequest) (*SuggestResponse, error)
}

type SuggestionProviderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Suggest(ctx context.Context, in *SuggestRequest) (*SuggestResponse, error)
}

type suggestionProviderClient struct {
	conn *grpc.ClientConn
}

func NewSuggestionProviderClient(conn *grpc.ClientConn) SuggestionProviderClient {
	return &suggestionProviderClient{conn: conn}
}

func (c *suggestionProviderClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *suggestionProviderClient) Suggest(ctx context.Context, in *SuggestRequest) (*SuggestResponse, error) {
	out := &SuggestResponse{}
	if err := c.conn.Invoke(ctx, methodSuggest, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSuggestionProviderServer(server grpc.ServiceRegistrar, impl SuggestionProviderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SuggestionProviderServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Suggest",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &SuggestRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Suggest(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSuggest}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*SuggestRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Suggest(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "retrolog/suggest/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SuggestionProviderServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSuggestionProviderServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSuggestionProviderClient(conn), nil
}

func PluginMap(impl SuggestionProviderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
