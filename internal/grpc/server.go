package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/internal/service"
	pkglog "github.com/weiawesome/amigos-chat/pkg/log"
	"github.com/weiawesome/amigos-chat/pkg/validation"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "amigos.v1.Amigos"

// Empty is the input of procedures that take none.
type Empty struct{}

// GetUserReply wraps the optional user so that "not registered" is a
// successful reply with a null user.
type GetUserReply struct {
	User *domain.User `json:"user"`
}

type amigosServer struct {
	users    service.UserService
	groups   service.GroupService
	messages service.MessageService
	clock    func() time.Time
}

func (s *amigosServer) healthcheck(_ context.Context, _ *Empty) (*domain.HealthStatus, error) {
	hs := domain.NewHealthStatus(s.clock())
	return &hs, nil
}

func (s *amigosServer) registerUser(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error) {
	return s.users.RegisterUser(ctx, req)
}

func (s *amigosServer) getUser(ctx context.Context, req *domain.GetUserRequest) (*GetUserReply, error) {
	user, err := s.users.GetUser(ctx, req.WalletAddress)
	if err != nil {
		return nil, err
	}
	return &GetUserReply{User: user}, nil
}

func (s *amigosServer) getAllUsers(ctx context.Context, _ *Empty) ([]domain.User, error) {
	return s.users.GetAllUsers(ctx)
}

func (s *amigosServer) createGroup(ctx context.Context, req *domain.CreateGroupRequest) (*domain.Group, error) {
	return s.groups.CreateGroup(ctx, req)
}

func (s *amigosServer) joinGroup(ctx context.Context, req *domain.JoinGroupRequest) (*domain.GroupMembership, error) {
	return s.groups.JoinGroup(ctx, req)
}

func (s *amigosServer) getUserGroups(ctx context.Context, req *domain.GetUserGroupsRequest) ([]domain.Group, error) {
	return s.groups.GetUserGroups(ctx, req.UserWalletAddress)
}

func (s *amigosServer) getAllGroups(ctx context.Context, _ *Empty) ([]domain.Group, error) {
	return s.groups.GetAllGroups(ctx)
}

func (s *amigosServer) sendMessage(ctx context.Context, req *domain.SendMessageRequest) (*domain.Message, error) {
	return s.messages.SendMessage(ctx, req)
}

func (s *amigosServer) getMessages(ctx context.Context, req *domain.GetMessagesRequest) ([]domain.Message, error) {
	return s.messages.GetMessages(ctx, req)
}

func (s *amigosServer) serviceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			unary("Healthcheck", s.healthcheck),
			unary("RegisterUser", s.registerUser),
			unary("GetUser", s.getUser),
			unary("GetAllUsers", s.getAllUsers),
			unary("CreateGroup", s.createGroup),
			unary("JoinGroup", s.joinGroup),
			unary("GetUserGroups", s.getUserGroups),
			unary("GetAllGroups", s.getAllGroups),
			unary("SendMessage", s.sendMessage),
			unary("GetMessages", s.getMessages),
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "amigos/v1/amigos",
	}
}

// unary adapts a typed procedure into a method handler that decodes,
// validates, runs the interceptor chain and maps service errors to codes.
func unary[Req, Resp any](name string, fn func(context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req any) (any, error) {
				typed := req.(*Req)
				if err := validation.Struct(typed); err != nil {
					return nil, status.Error(codes.InvalidArgument, validation.Message(err))
				}
				resp, err := fn(pkglog.WithProcedure(ctx, name), typed)
				if err != nil {
					return nil, toStatus(err)
				}
				return resp, nil
			}

			if interceptor == nil {
				return handler(ctx, in)
			}
			return interceptor(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}, handler)
		},
	}
}

// toStatus maps service error categories onto gRPC codes.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		code = codes.InvalidArgument
	case errors.Is(err, service.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, service.ErrAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	return status.Error(code, err.Error())
}

// NewGRPCServer builds a gRPC server exposing the chat procedures.
func NewGRPCServer(
	users service.UserService,
	groups service.GroupService,
	messages service.MessageService,
	logger zerolog.Logger,
) *grpc.Server {
	validation.Init()

	s := grpc.NewServer(
		grpc.UnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
	)
	impl := &amigosServer{
		users:    users,
		groups:   groups,
		messages: messages,
		clock:    time.Now,
	}
	s.RegisterService(impl.serviceDesc(), impl)
	return s
}

// StartGRPCServer creates and starts the gRPC server in a background goroutine.
func StartGRPCServer(
	addr string,
	users service.UserService,
	groups service.GroupService,
	messages service.MessageService,
	logger zerolog.Logger,
) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewGRPCServer(users, groups, messages, logger)

	go func() {
		logger.Info().Str("address", addr).Msg("grpc server listening")
		if err := s.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc server error")
		}
	}()

	return s, nil
}
