package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "flashcards.StudyTools"

// StudyToolsServer mirrors the JSON API. Requests and replies are
// google.protobuf.Struct values shaped like the JSON bodies.
type StudyToolsServer interface {
	ListStudyTools(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	CreateStudyTool(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateFlashcard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Delete(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterStudyToolsServer(s *grpc.Server, srv StudyToolsServer) {
	s.RegisterService(&studyToolsServiceDesc, srv)
}

var studyToolsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*StudyToolsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListStudyTools",
			Handler:    listStudyToolsHandler,
		},
		{
			MethodName: "CreateStudyTool",
			Handler: structHandler("CreateStudyTool", func(srv StudyToolsServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
				return srv.CreateStudyTool
			}),
		},
		{
			MethodName: "CreateFlashcard",
			Handler: structHandler("CreateFlashcard", func(srv StudyToolsServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
				return srv.CreateFlashcard
			}),
		},
		{
			MethodName: "Delete",
			Handler: structHandler("Delete", func(srv StudyToolsServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
				return srv.Delete
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flashcards.proto",
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

func listStudyToolsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StudyToolsServer).ListStudyTools(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("ListStudyTools"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StudyToolsServer).ListStudyTools(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func structHandler(
	name string,
	method func(StudyToolsServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		call := method(srv.(StudyToolsServer))
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(name),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type StudyToolsClient struct {
	cc grpc.ClientConnInterface
}

func NewStudyToolsClient(cc grpc.ClientConnInterface) *StudyToolsClient {
	return &StudyToolsClient{cc: cc}
}

func (c *StudyToolsClient) ListStudyTools(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListStudyTools", in, opts...)
}

func (c *StudyToolsClient) CreateStudyTool(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "CreateStudyTool", in, opts...)
}

func (c *StudyToolsClient) CreateFlashcard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "CreateFlashcard", in, opts...)
}

func (c *StudyToolsClient) Delete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Delete", in, opts...)
}

func (c *StudyToolsClient) invoke(ctx context.Context, method string, in interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
