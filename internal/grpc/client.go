package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/weiawesome/amigos-chat/internal/domain"
)

// Client is a typed client for the Amigos gRPC service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection. Calls are sent with the JSON codec.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) Healthcheck(ctx context.Context, opts ...grpc.CallOption) (*domain.HealthStatus, error) {
	out := new(domain.HealthStatus)
	if err := c.invoke(ctx, "Healthcheck", &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterUser(ctx context.Context, in *domain.RegisterUserRequest, opts ...grpc.CallOption) (*domain.User, error) {
	out := new(domain.User)
	if err := c.invoke(ctx, "RegisterUser", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser returns nil without error when the wallet is not registered.
func (c *Client) GetUser(ctx context.Context, in *domain.GetUserRequest, opts ...grpc.CallOption) (*domain.User, error) {
	out := new(GetUserReply)
	if err := c.invoke(ctx, "GetUser", in, out, opts...); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) GetAllUsers(ctx context.Context, opts ...grpc.CallOption) ([]domain.User, error) {
	var out []domain.User
	if err := c.invoke(ctx, "GetAllUsers", &Empty{}, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGroup(ctx context.Context, in *domain.CreateGroupRequest, opts ...grpc.CallOption) (*domain.Group, error) {
	out := new(domain.Group)
	if err := c.invoke(ctx, "CreateGroup", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) JoinGroup(ctx context.Context, in *domain.JoinGroupRequest, opts ...grpc.CallOption) (*domain.GroupMembership, error) {
	out := new(domain.GroupMembership)
	if err := c.invoke(ctx, "JoinGroup", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUserGroups(ctx context.Context, in *domain.GetUserGroupsRequest, opts ...grpc.CallOption) ([]domain.Group, error) {
	var out []domain.Group
	if err := c.invoke(ctx, "GetUserGroups", in, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAllGroups(ctx context.Context, opts ...grpc.CallOption) ([]domain.Group, error) {
	var out []domain.Group
	if err := c.invoke(ctx, "GetAllGroups", &Empty{}, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, in *domain.SendMessageRequest, opts ...grpc.CallOption) (*domain.Message, error) {
	out := new(domain.Message)
	if err := c.invoke(ctx, "SendMessage", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMessages(ctx context.Context, in *domain.GetMessagesRequest, opts ...grpc.CallOption) ([]domain.Message, error) {
	var out []domain.Message
	if err := c.invoke(ctx, "GetMessages", in, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
