package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/export"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

type putSubjectsRequest struct {
	Subjects []service.SyncSubject `json:"subjects"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) handleGetSubjects(c echo.Context) error {
	subjects, err := s.subjectsSvc.Subjects(c.Request().Context(), userID(c))
	if err != nil {
		return fmt.Errorf("subjectsSvc.Subjects: %w", err)
	}

	return c.JSON(http.StatusOK, subjectsResponse{Subjects: newSubjectDTOs(subjects)})
}

func (s *Server) handlePutSubjects(c echo.Context) error {
	request := putSubjectsRequest{}
	if err := c.Bind(&request); err != nil {
		return fmt.Errorf("%w: malformed body", ierrors.ErrInvalidInput)
	}
	if request.Subjects == nil {
		request.Subjects = []service.SyncSubject{}
	}

	subjects, err := s.subjectsSvc.Sync(c.Request().Context(), userID(c), request.Subjects)
	if err != nil {
		return fmt.Errorf("subjectsSvc.Sync: %w", err)
	}

	return c.JSON(http.StatusOK, subjectsResponse{Subjects: newSubjectDTOs(subjects)})
}

func (s *Server) handleGetSummary(c echo.Context) error {
	summary, err := s.reportSvc.Summary(c.Request().Context(), userID(c))
	if err != nil {
		return fmt.Errorf("reportSvc.Summary: %w", err)
	}

	return c.JSON(http.StatusOK, newSummaryDTO(summary))
}

func (s *Server) handleGetExport(c echo.Context) error {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		return err
	}

	file, err := s.reportSvc.Export(c.Request().Context(), userID(c), format, time.Now())
	if err != nil {
		return fmt.Errorf("reportSvc.Export: %w", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
