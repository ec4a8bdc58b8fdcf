package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/opengs/questionbank"
	"github.com/opengs/questionbank/bank"
	"github.com/opengs/questionbank/draft"
	"github.com/opengs/questionbank/export"
	"github.com/opengs/questionbank/ingest"
	"github.com/spf13/cobra"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Start REST API server",
	Long:  "Start REST API server that keeps one editing session in memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cfg, err := newSession(cmd)
		if err != nil {
			return err
		}

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetUint("port")
		}

		gin.SetMode(gin.ReleaseMode)
		router := newRouter(session)
		session.Logger().Info("listening", "host", host, "port", port)
		if err := router.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			return errors.Join(errors.New("failed to run HTTP server engine"), err)
		}
		return nil
	},
}

func init() {
	serveCMD.Flags().String("host", "0.0.0.0", "Host server will be listening on")
	serveCMD.Flags().Uint("port", 8884, "Port server will be listening on")
}

type recordView struct {
	Number   int    `json:"number"`
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func newRecordView(number int, record bank.Record) recordView {
	imageURL, _ := record.ImageURL()
	return recordView{
		Number:   number,
		ID:       record.ID,
		Question: record.Question,
		Answer:   record.Answer,
		ImageURL: imageURL,
	}
}

type draftView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	ImageURL string `json:"imageUrl,omitempty"`
	State    string `json:"state"`
	Progress uint8  `json:"progress"`
}

func newDraftView(snapshot draft.Snapshot) draftView {
	view := draftView{
		Question: snapshot.Question,
		Answer:   snapshot.Answer,
		State:    string(snapshot.State),
		Progress: snapshot.Progress,
	}
	if snapshot.Image != nil {
		view.ImageURL = snapshot.Image.DataURI()
	}
	return view
}

// Position of the record in the repository starting from 1. Zero if it is already gone
func recordNumber(records []bank.Record, id string) int {
	index := slices.IndexFunc(records, func(record bank.Record) bool { return record.ID == id })
	return index + 1
}

func errorJSON(ctx *gin.Context, status int, err error) {
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func newRouter(session *questionbank.Session) *gin.Engine {
	logger := session.Logger().With("component", "http")

	router := gin.New()
	router.Use(gin.Recovery(), func(ctx *gin.Context) {
		ctx.Next()
		logger.Debug("request", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "status", ctx.Writer.Status())
	})

	router.POST("/image", func(ctx *gin.Context) {
		header, err := ctx.FormFile("file")
		if err != nil {
			errorJSON(ctx, http.StatusBadRequest, err)
			return
		}
		file, err := header.Open()
		if err != nil {
			errorJSON(ctx, http.StatusBadRequest, err)
			return
		}
		defer file.Close()

		if _, err := session.Ingest(ingest.File{Name: header.Filename, MimeType: header.Header.Get("Content-Type"), Content: file}); err != nil {
			switch {
			case errors.Is(err, ingest.ErrInvalidMediaType):
				errorJSON(ctx, http.StatusUnsupportedMediaType, err)
			case errors.Is(err, ingest.ErrTooLarge):
				errorJSON(ctx, http.StatusRequestEntityTooLarge, err)
			default:
				errorJSON(ctx, http.StatusInternalServerError, err)
			}
			return
		}
		ctx.JSON(http.StatusOK, newDraftView(session.Draft.Snapshot()))
	})

	router.DELETE("/image", func(ctx *gin.Context) {
		if err := session.Draft.RemoveImage(); err != nil {
			errorJSON(ctx, http.StatusConflict, err)
			return
		}
		ctx.JSON(http.StatusOK, newDraftView(session.Draft.Snapshot()))
	})

	router.GET("/draft", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, newDraftView(session.Draft.Snapshot()))
	})

	router.PUT("/draft", func(ctx *gin.Context) {
		var request struct {
			Question *string `json:"question"`
			Answer   *string `json:"answer"`
		}
		if err := ctx.ShouldBindJSON(&request); err != nil {
			errorJSON(ctx, http.StatusBadRequest, err)
			return
		}
		if request.Question != nil {
			session.Draft.SetQuestion(*request.Question)
		}
		if request.Answer != nil {
			session.Draft.SetAnswer(*request.Answer)
		}
		ctx.JSON(http.StatusOK, newDraftView(session.Draft.Snapshot()))
	})

	router.POST("/scan", func(ctx *gin.Context) {
		// scan outlives the request
		scan, err := session.Draft.StartScan(context.WithoutCancel(ctx.Request.Context()))
		if err != nil {
			if errors.Is(err, draft.ErrScanInProgress) {
				errorJSON(ctx, http.StatusConflict, err)
			} else {
				errorJSON(ctx, http.StatusBadRequest, err)
			}
			return
		}

		if ctx.Query("wait") != "true" {
			ctx.JSON(http.StatusAccepted, newDraftView(session.Draft.Snapshot()))
			return
		}
		if _, err := scan.Wait(); err != nil {
			errorJSON(ctx, http.StatusUnprocessableEntity, err)
			return
		}
		ctx.JSON(http.StatusOK, newDraftView(session.Draft.Snapshot()))
	})

	router.POST("/commit", func(ctx *gin.Context) {
		record, err := session.Draft.Commit()
		if err != nil {
			errorJSON(ctx, http.StatusInternalServerError, err)
			return
		}
		if record == nil {
			ctx.Status(http.StatusNoContent)
			return
		}
		ctx.JSON(http.StatusCreated, newRecordView(recordNumber(session.Repository.All(), record.ID), *record))
	})

	router.GET("/questions", func(ctx *gin.Context) {
		records := session.Search(ctx.Query("q"))
		views := make([]recordView, 0, len(records))
		for index, record := range records {
			views = append(views, newRecordView(index+1, record))
		}
		ctx.JSON(http.StatusOK, gin.H{
			"found":     len(records),
			"total":     session.Repository.Len(),
			"questions": views,
		})
	})

	router.DELETE("/questions/:id", func(ctx *gin.Context) {
		// deleting unknown id is a no-op
		if !session.Delete(ctx.Param("id")) {
			logger.Debug("question to delete not found", "id", ctx.Param("id"))
		}
		ctx.Status(http.StatusNoContent)
	})

	router.GET("/export", func(ctx *gin.Context) {
		exporter := session.Exporter
		if format := ctx.Query("format"); format != "" {
			serializer, err := export.SerializerFor(format)
			if err != nil {
				errorJSON(ctx, http.StatusBadRequest, err)
				return
			}
			exporter = export.New(serializer, export.WithLogger(logger))
		}

		artifact, err := exporter.Export(ctx.Request.Context(), session.Repository.All())
		if err != nil {
			if errors.Is(err, export.ErrEmptyRepository) {
				errorJSON(ctx, http.StatusConflict, err)
			} else {
				logger.Error("export failed", "error", err)
				errorJSON(ctx, http.StatusInternalServerError, err)
			}
			return
		}
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		ctx.Data(http.StatusOK, artifact.MimeType, artifact.Data)
	})

	return router
}

