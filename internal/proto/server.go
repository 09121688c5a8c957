package proto

import (
	"context"
	"math"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/config"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/db"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/service"
)

type StudyToolsServerImpl struct {
	svc    *service.StudyTools
	logger *zap.SugaredLogger
	addr   net.Addr
}

func NewGRPCServer(lc fx.Lifecycle, cfg *config.Config, svc *service.StudyTools, logger *zap.SugaredLogger) *StudyToolsServerImpl {
	instance := newStudyToolsServer(svc, logger)

	grpcServer := grpc.NewServer()
	RegisterStudyToolsServer(grpcServer, instance)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", cfg.Host+":"+cfg.GRPCPort)
			if err != nil {
				return errors.Wrap(err, "grpc listen")
			}
			instance.addr = lis.Addr()
			logger.Infow("Starting GRPC server.", "listen", lis.Addr().String())

			go func() {
				if err := grpcServer.Serve(lis); err != nil {
					logger.Errorw("GRPC server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			grpcServer.GracefulStop()
			return nil
		},
	})

	return instance
}

func newStudyToolsServer(svc *service.StudyTools, logger *zap.SugaredLogger) *StudyToolsServerImpl {
	return &StudyToolsServerImpl{
		svc:    svc,
		logger: logger,
	}
}

// Addr is the bound listener address once the server has started.
func (s *StudyToolsServerImpl) Addr() net.Addr {
	return s.addr
}

func (s *StudyToolsServerImpl) ListStudyTools(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	tools, err := s.svc.List(ctx)
	if err != nil {
		return nil, s.internal("Failed to fetch study tools", err)
	}

	items := make([]interface{}, len(tools))
	for i := range tools {
		items[i] = toolFields(tools[i])
	}
	return s.reply(map[string]interface{}{"tools": items})
}

func (s *StudyToolsServerImpl) CreateStudyTool(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	tool, err := s.svc.CreateTool(ctx, in.GetFields()["name"].GetStringValue())
	if err != nil {
		return nil, s.createError(err)
	}
	return s.reply(toolFields(*tool))
}

func (s *StudyToolsServerImpl) CreateFlashcard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	toolID, ok := idField(fields[models.ParamToolID])
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "Missing required fields")
	}

	card, err := s.svc.CreateFlashcard(ctx, toolID, fields["question"].GetStringValue(), fields["answer"].GetStringValue())
	if err != nil {
		return nil, s.createError(err)
	}
	return s.reply(cardFields(*card))
}

// Delete removes a flashcard, a study tool, or everything when neither id is given.
func (s *StudyToolsServerImpl) Delete(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()

	if v, present := fields[models.ParamFlashcardID]; present {
		id, ok := idField(v)
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "Invalid id")
		}
		if err := s.svc.DeleteFlashcard(ctx, id); err != nil {
			if errors.Is(err, service.ErrFlashcardNotFound) {
				return nil, status.Error(codes.NotFound, "Flashcard not found")
			}
			return nil, s.internal("Failed to delete flashcard", err)
		}
		return s.reply(map[string]interface{}{"message": "Flashcard deleted"})
	}

	if v, present := fields[models.ParamToolID]; present {
		id, ok := idField(v)
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "Invalid id")
		}
		if err := s.svc.DeleteTool(ctx, id); err != nil {
			if errors.Is(err, service.ErrToolNotFound) {
				return nil, status.Error(codes.NotFound, "Study tool not found")
			}
			return nil, s.internal("Failed to delete study tool", err)
		}
		return s.reply(map[string]interface{}{"message": "Study tool deleted"})
	}

	if err := s.svc.Reset(ctx); err != nil {
		return nil, s.internal("Failed to reset database", err)
	}
	return s.reply(map[string]interface{}{"message": "Database reset successfully"})
}

func (s *StudyToolsServerImpl) createError(err error) error {
	if errors.Is(err, service.ErrValidation) {
		return status.Error(codes.InvalidArgument, "Missing required fields")
	}
	return s.internal("Failed to create item", err)
}

func (s *StudyToolsServerImpl) internal(msg string, err error) error {
	s.logger.Errorw(msg, "error", err)
	return status.Error(codes.Internal, msg)
}

func (s *StudyToolsServerImpl) reply(m map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, s.internal("Failed to encode reply", err)
	}
	return out, nil
}

// idField accepts a positive whole number.
func idField(v *structpb.Value) (uint64, bool) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	f := n.NumberValue
	if f < 1 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, false
	}
	return uint64(f), true
}

func toolFields(tool db.StudyTool) map[string]interface{} {
	cards := make([]interface{}, len(tool.Flashcards))
	for i := range tool.Flashcards {
		cards[i] = cardFields(tool.Flashcards[i])
	}
	return map[string]interface{}{
		"id":         tool.ID,
		"name":       tool.Name,
		"flashcards": cards,
	}
}

func cardFields(card db.Flashcard) map[string]interface{} {
	return map[string]interface{}{
		"id":               card.ID,
		"question":         card.Question,
		"answer":           card.Answer,
		models.ParamToolID: card.ToolID,
	}
}
