package proto

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/config"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/service"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/testutil"
)

func newBufClient(t *testing.T) *StudyToolsClient {
	t.Helper()

	l := zap.NewNop().Sugar()
	svc := service.NewStudyTools(testutil.NewDB(t), l)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterStudyToolsServer(srv, newStudyToolsServer(svc, l))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(ctx, "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithInsecure(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})

	return NewStudyToolsClient(conn)
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()

	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func code(err error) codes.Code {
	return status.Code(err)
}

func TestStudyToolsRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newBufClient(t)

	tool, err := c.CreateStudyTool(ctx, mustStruct(t, map[string]interface{}{"name": "Biology"}))
	require.NoError(t, err)
	toolID := tool.Fields["id"].GetNumberValue()
	assert.NotZero(t, toolID)
	assert.Equal(t, "Biology", tool.Fields["name"].GetStringValue())

	card, err := c.CreateFlashcard(ctx, mustStruct(t, map[string]interface{}{
		"toolId":   toolID,
		"question": "Q1",
		"answer":   "A1",
	}))
	require.NoError(t, err)
	assert.Equal(t, toolID, card.Fields["toolId"].GetNumberValue())

	list, err := c.ListStudyTools(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	tools := list.Fields["tools"].GetListValue().GetValues()
	require.Len(t, tools, 1)
	cards := tools[0].GetStructValue().Fields["flashcards"].GetListValue().GetValues()
	require.Len(t, cards, 1)
	assert.Equal(t, "Q1", cards[0].GetStructValue().Fields["question"].GetStringValue())

	resp, err := c.Delete(ctx, mustStruct(t, map[string]interface{}{"flashcardId": card.Fields["id"].GetNumberValue()}))
	require.NoError(t, err)
	assert.Equal(t, "Flashcard deleted", resp.Fields["message"].GetStringValue())

	resp, err = c.Delete(ctx, mustStruct(t, map[string]interface{}{"toolId": toolID}))
	require.NoError(t, err)
	assert.Equal(t, "Study tool deleted", resp.Fields["message"].GetStringValue())

	list, err = c.ListStudyTools(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Empty(t, list.Fields["tools"].GetListValue().GetValues())
}

func TestStudyToolsReset(t *testing.T) {
	ctx := context.Background()
	c := newBufClient(t)

	for _, name := range []string{"Biology", "Chemistry"} {
		_, err := c.CreateStudyTool(ctx, mustStruct(t, map[string]interface{}{"name": name}))
		require.NoError(t, err)
	}

	resp, err := c.Delete(ctx, mustStruct(t, map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, "Database reset successfully", resp.Fields["message"].GetStringValue())

	list, err := c.ListStudyTools(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Empty(t, list.Fields["tools"].GetListValue().GetValues())
}

func TestStudyToolsErrors(t *testing.T) {
	ctx := context.Background()
	c := newBufClient(t)

	_, err := c.CreateStudyTool(ctx, mustStruct(t, map[string]interface{}{"name": " "}))
	assert.Equal(t, codes.InvalidArgument, code(err))

	_, err = c.CreateFlashcard(ctx, mustStruct(t, map[string]interface{}{"question": "Q1", "answer": "A1"}))
	assert.Equal(t, codes.InvalidArgument, code(err))

	_, err = c.CreateFlashcard(ctx, mustStruct(t, map[string]interface{}{"toolId": 99, "question": "Q1", "answer": "A1"}))
	assert.Equal(t, codes.Internal, code(err))

	_, err = c.Delete(ctx, mustStruct(t, map[string]interface{}{"flashcardId": 99}))
	assert.Equal(t, codes.NotFound, code(err))

	_, err = c.Delete(ctx, mustStruct(t, map[string]interface{}{"toolId": 99}))
	assert.Equal(t, codes.NotFound, code(err))

	for _, bad := range []interface{}{"abc", 0, 1.5, -3} {
		_, err = c.Delete(ctx, mustStruct(t, map[string]interface{}{"toolId": bad}))
		assert.Equal(t, codes.InvalidArgument, code(err), "%v", bad)
	}
}

func TestNewGRPCServerLifecycle(t *testing.T) {
	l := zap.NewNop().Sugar()
	svc := service.NewStudyTools(testutil.NewDB(t), l)
	lc := fxtest.NewLifecycle(t)

	srv := NewGRPCServer(lc, &config.Config{Host: "127.0.0.1", GRPCPort: "0"}, svc, l)
	lc.RequireStart()
	defer lc.RequireStop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(ctx, srv.Addr().String(), grpc.WithInsecure(), grpc.WithBlock())
	require.NoError(t, err)
	defer conn.Close()

	list, err := NewStudyToolsClient(conn).ListStudyTools(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Empty(t, list.Fields["tools"].GetListValue().GetValues())
}
