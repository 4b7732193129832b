package audit_logs

import (
	"errors"
	"log/slog"
	"time"

	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
)

// PermissionChecker resolves whether a user holds a permission inside an
// organization. The concrete implementation lives in the organizations
// feature and is injected through SetPermissionChecker to avoid an import
// cycle.
type PermissionChecker interface {
	HasPermission(userID uuid.UUID, organizationID uuid.UUID, permission roles.Permission) bool
}

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	permissionChecker  PermissionChecker
	logger             *slog.Logger
}

func (s *AuditLogService) SetPermissionChecker(permissionChecker PermissionChecker) {
	s.permissionChecker = permissionChecker
}

// WriteAuditLog records an audit entry. Failures are logged and swallowed so
// the calling operation never fails because of audit bookkeeping.
func (s *AuditLogService) WriteAuditLog(message string, userID *uuid.UUID, organizationID *uuid.UUID) {
	auditLog := &AuditLog{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: organizationID,
		Message:        message,
		CreatedAt:      time.Now(),
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		s.logger.Error("failed to write audit log",
			slog.String("message", message),
			slog.String("error", err.Error()))
	}
}

func (s *AuditLogService) GetUserAuditLogs(
	requestingUserID uuid.UUID,
	targetUserID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if requestingUserID != targetUserID {
		return nil, errors.New("users can only view their own audit logs")
	}

	limit, offset := normalizePagination(request)

	items, err := s.auditLogRepository.GetByUser(targetUserID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{AuditLogs: items, Limit: limit, Offset: offset}, nil
}

func (s *AuditLogService) GetOrganizationAuditLogs(
	requestingUserID uuid.UUID,
	organizationID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if s.permissionChecker == nil ||
		!s.permissionChecker.HasPermission(requestingUserID, organizationID, roles.PermissionManageOrganization) {
		return nil, errors.New("insufficient permissions to view organization audit logs")
	}

	limit, offset := normalizePagination(request)

	items, err := s.auditLogRepository.GetByOrganization(organizationID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	total, err := s.auditLogRepository.CountByOrganization(organizationID, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{AuditLogs: items, Total: total, Limit: limit, Offset: offset}, nil
}

func normalizePagination(request *GetAuditLogsRequest) (int, int) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
