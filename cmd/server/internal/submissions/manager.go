// Package submissions owns the submission lifecycle: creation against
// an event's dynamic form, team roster upkeep, review decisions, and
// teardown with archival.
package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hackwave-community/platform-api/internal/models"
	"github.com/hackwave-community/platform-api/cmd/server/internal/visibility"
	"github.com/hackwave-community/platform-api/internal/voting"
	"github.com/hackwave-community/platform-api/internal/registration"
	"github.com/hackwave-community/platform-api/internal/types"
	"github.com/hackwave-community/platform-api/internal/upload"
)

const name = "github.com/hackwave-community/platform-api/cmd/server/internal/submissions"

var tracer = otel.Tracer(name)

const messageNeedRegistration = "需先报名"

// Manager is the submission lifecycle orchestrator. Archiver may be
// nil, which disables deletion snapshots.
type Manager struct {
	DB           *gorm.DB
	Registration registration.Service
	Archiver     upload.Archiver
}

func NewManager(db *gorm.DB, reg registration.Service, archiver upload.Archiver) *Manager {
	return &Manager{DB: db, Registration: reg, Archiver: archiver}
}

// Item bundles a submission with everything its projection needs.
type Item struct {
	Submission  models.Submission
	Project     models.Project
	Attachments []models.ProjectAttachment
	Team        []visibility.Member
	VoteCount   int
	Rank        *int
}

func (i *Item) View(privileged bool, formFields []types.SubmissionFormField) types.SubmissionView {
	return visibility.Shape(visibility.Input{
		Submission:  i.Submission,
		Project:     i.Project,
		Attachments: i.Attachments,
		Team:        i.Team,
		FormFields:  formFields,
		VoteCount:   i.VoteCount,
		Rank:        i.Rank,
	}, privileged)
}

// Create validates and persists a new submission. The project, roster,
// attachments, and submission row commit in one transaction.
func (m *Manager) Create(
	ctx context.Context,
	event *models.Event,
	requester *models.User,
	req types.SubmissionCreateRequest,
	now time.Time,
) (*Item, error) {
	ctx, span := tracer.Start(ctx, "Manager.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("event.id", event.ID.String()),
		attribute.String("requester.id", requester.ID.String()),
	)

	db := m.DB.WithContext(ctx)

	if !event.SubmissionWindowOpen(now) {
		span.AddEvent("submission window closed")
		return nil, reject(types.CodeValidation, "submissions are closed for this event")
	}

	leaderID := requester.ID
	if req.LeaderID != "" {
		parsed, err := uuid.Parse(req.LeaderID)
		if err != nil {
			return nil, rejectFields(map[string]string{"leaderId": "not a valid id"})
		}
		leaderID = parsed
	}

	span.AddEvent("checking requester registration")
	registered, err := m.Registration.HasActiveRegistration(ctx, event.ID, requester.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check requester registration")
		return nil, err
	}
	if !registered {
		return nil, reject(types.CodePermission, messageNeedRegistration)
	}

	if leaderID != requester.ID {
		span.AddEvent("checking leader registration")
		leaderRegistered, err := m.Registration.HasActiveRegistration(ctx, event.ID, leaderID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to check leader registration")
			return nil, err
		}
		if !leaderRegistered {
			return nil, reject(types.CodePermission, messageNeedRegistration)
		}
	}

	span.AddEvent("validating answer bag against the event form")
	schema, err := CompileFieldSchema(event.SubmissionFormFields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compile form schema")
		return nil, err
	}
	if fieldErrs := schema.Validate(req.Fields); fieldErrs != nil {
		return nil, rejectFields(fieldErrs)
	}

	memberIDs, err := parseIDs(req.MemberIDs)
	if err != nil {
		return nil, rejectFields(map[string]string{"memberIds": "not a valid id list"})
	}
	memberIDs = DedupeMembers(leaderID, memberIDs)

	team, err := m.resolveUsers(ctx, leaderID, memberIDs)
	if err != nil {
		return nil, err
	}

	answers := req.Fields
	if answers == nil {
		// The fields column is NOT NULL; an absent bag stores as {}.
		answers = map[string]any{}
	}

	project := models.Project{
		OwnerUserID:         leaderID,
		Title:               req.Title,
		Tagline:             req.Tagline,
		Description:         req.Description,
		DemoURL:             req.DemoURL,
		CoverImageURL:       req.CoverImageURL,
		Fields:              datatypes.JSONMap(answers),
		CommunityAuthorized: req.CommunityAuthorized,
	}
	submission := models.Submission{
		Title:       req.Title,
		Description: req.Description,
		Status:      types.SubmissionStatusSubmitted,
		EventID:     event.ID,
		SubmitterID: requester.ID,
	}

	span.AddEvent("persisting submission")
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		if err := SyncTeam(ctx, tx, project.ID, leaderID, memberIDs); err != nil {
			return err
		}

		if err := createAttachments(tx, project.ID, req.Attachments); err != nil {
			return err
		}

		submission.ProjectID = project.ID
		if err := tx.Create(&submission).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return reject(types.CodeConflict, "a submission for this project already exists")
			}
			return fmt.Errorf("failed to create submission: %w", err)
		}

		return nil
	})
	if err != nil {
		var rejection *Rejection
		if !errors.As(err, &rejection) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to persist submission")
		}
		return nil, err
	}

	span.AddEvent("submission created")
	return &Item{
		Submission:  submission,
		Project:     project,
		Attachments: attachmentRows(project.ID, req.Attachments),
		Team:        team,
	}, nil
}

// Update edits a submission in place. Any edit resets the review
// decision back to submitted.
func (m *Manager) Update(
	ctx context.Context,
	submission *models.Submission,
	requester *models.User,
	req types.SubmissionUpdateRequest,
) (*Item, error) {
	ctx, span := tracer.Start(ctx, "Manager.Update")
	defer span.End()

	span.SetAttributes(
		attribute.String("submission.id", submission.ID.String()),
		attribute.String("requester.id", requester.ID.String()),
	)

	db := m.DB.WithContext(ctx)

	project, err := models.ByID[models.Project](ctx, db, submission.ProjectID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load project")
		return nil, err
	}

	if !authorized(requester, submission, project) {
		return nil, reject(types.CodePermission, "no permission")
	}

	leaderID := project.OwnerUserID
	if req.LeaderID != nil {
		parsed, err := uuid.Parse(*req.LeaderID)
		if err != nil {
			return nil, rejectFields(map[string]string{"leaderId": "not a valid id"})
		}
		leaderID = parsed
	}
	leaderChanged := leaderID != project.OwnerUserID

	if leaderChanged {
		span.AddEvent("checking new leader registration")
		registered, err := m.Registration.HasActiveRegistration(ctx, submission.EventID, leaderID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to check leader registration")
			return nil, err
		}
		if !registered {
			return nil, reject(types.CodePermission, messageNeedRegistration)
		}
	}

	if req.Fields != nil {
		event, err := models.ByID[models.Event](ctx, db, submission.EventID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load event")
			return nil, err
		}

		span.AddEvent("validating changed answers against the event form")
		schema, err := CompileFieldSchema(event.SubmissionFormFields)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to compile form schema")
			return nil, err
		}

		merged := map[string]any{}
		for key, value := range project.Fields {
			merged[key] = value
		}
		for key, value := range *req.Fields {
			merged[key] = value
		}
		if fieldErrs := schema.Validate(merged); fieldErrs != nil {
			return nil, rejectFields(fieldErrs)
		}
		project.Fields = datatypes.JSONMap(merged)
	}

	var memberIDs []uuid.UUID
	rosterChanged := leaderChanged || req.MemberIDs != nil
	if req.MemberIDs != nil {
		memberIDs, err = parseIDs(*req.MemberIDs)
		if err != nil {
			return nil, rejectFields(map[string]string{"memberIds": "not a valid id list"})
		}
	} else if rosterChanged {
		memberIDs, err = m.currentMembers(ctx, project.ID)
		if err != nil {
			return nil, err
		}
	}
	if rosterChanged {
		memberIDs = DedupeMembers(leaderID, memberIDs)
		if _, err := m.resolveUsers(ctx, leaderID, memberIDs); err != nil {
			return nil, err
		}
	}

	applyProjectUpdate(project, req)
	project.OwnerUserID = leaderID

	submission.Title = project.Title
	submission.Description = project.Description
	submission.Status = types.SubmissionStatusSubmitted
	submission.ReviewNote = models.NewNull[string](nil)
	submission.JudgeScore = models.NewNull[int](nil)

	span.AddEvent("persisting update")
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		if rosterChanged {
			if err := SyncTeam(ctx, tx, project.ID, leaderID, memberIDs); err != nil {
				return err
			}
		}

		if req.Attachments != nil {
			err := tx.Where("project_id = ?", project.ID).
				Delete(&models.ProjectAttachment{}).Error
			if err != nil {
				return fmt.Errorf("failed to clear attachments: %w", err)
			}
			if err := createAttachments(tx, project.ID, *req.Attachments); err != nil {
				return err
			}
		}

		if err := tx.Save(submission).Error; err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist update")
		return nil, err
	}

	span.AddEvent("submission updated")
	return m.hydrate(ctx, submission, project)
}

// Snapshot references for an archived deletion.
type DeletedSnapshot struct {
	Store  *string
	Object *string
}

// Delete archives a privileged snapshot of the submission, then tears
// down the ledger rows, attachments, roster, submission, and project
// in one transaction.
func (m *Manager) Delete(
	ctx context.Context,
	submission *models.Submission,
	requester *models.User,
) (*DeletedSnapshot, error) {
	ctx, span := tracer.Start(ctx, "Manager.Delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("submission.id", submission.ID.String()),
		attribute.String("requester.id", requester.ID.String()),
	)

	db := m.DB.WithContext(ctx)

	project, err := models.ByID[models.Project](ctx, db, submission.ProjectID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load project")
		return nil, err
	}

	if !authorized(requester, submission, project) {
		return nil, reject(types.CodePermission, "no permission")
	}

	snapshot := &DeletedSnapshot{}
	if m.Archiver != nil {
		item, err := m.hydrate(ctx, submission, project)
		if err != nil {
			return nil, err
		}

		span.AddEvent("archiving deletion snapshot")
		payload, err := json.Marshal(item.View(true, nil))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to encode snapshot")
			return nil, err
		}

		object, err := upload.Snapshot(ctx, m.Archiver, payload)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to archive snapshot")
			return nil, err
		}

		store, err := m.Archiver.StoreIdentifier(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to identify snapshot store")
			return nil, err
		}

		snapshot.Store = &store
		snapshot.Object = &object
	}

	span.AddEvent("deleting submission")
	err = db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			what string
			run  func() error
		}{
			{"votes", func() error {
				return tx.Where("event_id = ? AND project_id = ?", submission.EventID, project.ID).
					Delete(&models.Vote{}).Error
			}},
			{"attachments", func() error {
				return tx.Where("project_id = ?", project.ID).
					Delete(&models.ProjectAttachment{}).Error
			}},
			{"roster", func() error {
				return tx.Where("project_id = ?", project.ID).
					Delete(&models.TeamMembership{}).Error
			}},
			{"submission", func() error {
				return tx.Delete(submission).Error
			}},
			{"project", func() error {
				return tx.Delete(project).Error
			}},
		}

		for _, step := range steps {
			if err := step.run(); err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.what, err)
			}
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete submission")
		return nil, err
	}

	span.AddEvent("submission deleted")
	return snapshot, nil
}

// Get hydrates a submission for display. The event must still be
// enabled or the submission is treated as absent.
func (m *Manager) Get(ctx context.Context, submission *models.Submission) (*Item, []types.SubmissionFormField, error) {
	ctx, span := tracer.Start(ctx, "Manager.Get")
	defer span.End()

	db := m.DB.WithContext(ctx)

	event, err := models.ByID[models.Event](ctx, db, submission.EventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load event")
		return nil, nil, err
	}
	if !event.Enabled {
		return nil, nil, reject(types.CodeNotFound, "not found")
	}

	project, err := models.ByID[models.Project](ctx, db, submission.ProjectID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load project")
		return nil, nil, err
	}

	item, err := m.hydrate(ctx, submission, project)
	if err != nil {
		return nil, nil, err
	}

	return item, event.SubmissionFormFields, nil
}

// List returns the event's submissions ranked for display. Unprivileged
// callers only see community-authorized projects whose submitter is an
// active, registered user.
func (m *Manager) List(
	ctx context.Context,
	event *models.Event,
	sortKey, order string,
	privileged bool,
) ([]Item, error) {
	ctx, span := tracer.Start(ctx, "Manager.List")
	defer span.End()

	span.SetAttributes(
		attribute.String("event.id", event.ID.String()),
		attribute.Bool("privileged", privileged),
	)

	db := m.DB.WithContext(ctx)

	var subs []models.Submission
	err := db.Where("event_id = ?", event.ID).Find(&subs).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list submissions")
		return nil, err
	}
	if len(subs) == 0 {
		return []Item{}, nil
	}

	projectIDs := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		projectIDs = append(projectIDs, sub.ProjectID)
	}

	var projects []models.Project
	err = db.Where("id IN ?", projectIDs).Find(&projects).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load projects")
		return nil, err
	}
	projectByID := make(map[uuid.UUID]models.Project, len(projects))
	for _, project := range projects {
		projectByID[project.ID] = project
	}

	var memberships []models.TeamMembership
	err = db.Where("project_id IN ?", projectIDs).Find(&memberships).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load rosters")
		return nil, err
	}

	userIDs := map[uuid.UUID]struct{}{}
	for _, membership := range memberships {
		userIDs[membership.UserID] = struct{}{}
	}
	for _, sub := range subs {
		userIDs[sub.SubmitterID] = struct{}{}
	}
	ids := make([]uuid.UUID, 0, len(userIDs))
	for id := range userIDs {
		ids = append(ids, id)
	}

	var users []models.User
	err = db.Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load users")
		return nil, err
	}
	userByID := make(map[uuid.UUID]models.User, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	var attachments []models.ProjectAttachment
	err = db.Where("project_id IN ?", projectIDs).Find(&attachments).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load attachments")
		return nil, err
	}
	attachmentsByProject := map[uuid.UUID][]models.ProjectAttachment{}
	for _, attachment := range attachments {
		attachmentsByProject[attachment.ProjectID] = append(
			attachmentsByProject[attachment.ProjectID], attachment,
		)
	}

	teamByProject := map[uuid.UUID][]visibility.Member{}
	for _, membership := range memberships {
		user, ok := userByID[membership.UserID]
		if !ok {
			continue
		}
		teamByProject[membership.ProjectID] = append(
			teamByProject[membership.ProjectID],
			visibility.Member{Membership: membership, User: user},
		)
	}

	counts, err := voting.CountsByEvent(ctx, db, event.ID)
	if err != nil {
		return nil, err
	}

	var registeredIDs []uuid.UUID
	if !privileged {
		err = db.Table("event_registrations").
			Where("event_id = ? AND status = ?", event.ID, "confirmed").
			Pluck("user_id", &registeredIDs).Error
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load registrations")
			return nil, err
		}
	}
	registered := make(map[uuid.UUID]struct{}, len(registeredIDs))
	for _, id := range registeredIDs {
		registered[id] = struct{}{}
	}

	ranked := make([]voting.Ranked, 0, len(subs))
	for _, sub := range subs {
		project, ok := projectByID[sub.ProjectID]
		if !ok {
			continue
		}

		if !privileged && !publiclyListed(sub, project, userByID, registered) {
			continue
		}

		ranked = append(ranked, voting.Ranked{
			Submission: sub,
			Project:    project,
			VoteCount:  voting.EffectiveCount(counts[project.ID], voting.Adjustment(&project)),
		})
	}

	voting.Rank(ranked, sortKey, order)

	items := make([]Item, 0, len(ranked))
	for i, entry := range ranked {
		rank := i + 1
		items = append(items, Item{
			Submission:  entry.Submission,
			Project:     entry.Project,
			Attachments: attachmentsByProject[entry.Project.ID],
			Team:        teamByProject[entry.Project.ID],
			VoteCount:   entry.VoteCount,
			Rank:        &rank,
		})
	}

	span.AddEvent("submissions listed", trace.WithAttributes(attribute.Int("count", len(items))))
	return items, nil
}

// Review records an administrator decision. Votes are untouched.
func (m *Manager) Review(
	ctx context.Context,
	submission *models.Submission,
	req types.ReviewRequest,
) error {
	ctx, span := tracer.Start(ctx, "Manager.Review")
	defer span.End()

	span.SetAttributes(
		attribute.String("submission.id", submission.ID.String()),
		attribute.String("decision", string(req.Decision)),
	)

	db := m.DB.WithContext(ctx)

	submission.Status = req.Decision
	submission.ReviewNote = models.NewNull(req.Note)
	submission.JudgeScore = models.NewNull(req.JudgeScore)

	err := db.Save(submission).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to record review")
		return fmt.Errorf("failed to record review: %w", err)
	}

	span.AddEvent("review recorded")
	return nil
}

// SetVoteTarget stores the manual adjustment that makes the displayed
// count equal the target. Returns the new displayed count and the
// stored adjustment, nil when cleared.
func (m *Manager) SetVoteTarget(
	ctx context.Context,
	submission *models.Submission,
	target int,
) (int, *int64, error) {
	ctx, span := tracer.Start(ctx, "Manager.SetVoteTarget")
	defer span.End()

	span.SetAttributes(
		attribute.String("submission.id", submission.ID.String()),
		attribute.Int("target", target),
	)

	db := m.DB.WithContext(ctx)

	project, err := models.ByID[models.Project](ctx, db, submission.ProjectID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load project")
		return 0, nil, err
	}

	ledgerCount, err := voting.LedgerCount(ctx, db, submission.EventID, project.ID)
	if err != nil {
		return 0, nil, err
	}

	voting.SetAdjustmentTarget(project, target, ledgerCount)

	err = db.Model(project).Update("vote_adjustment", project.VoteAdjustment).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store adjustment")
		return 0, nil, fmt.Errorf("failed to store adjustment: %w", err)
	}

	count := voting.EffectiveCount(ledgerCount, voting.Adjustment(project))
	span.AddEvent("adjustment stored")
	return count, models.PtrFromNull(project.VoteAdjustment), nil
}

func (m *Manager) hydrate(
	ctx context.Context,
	submission *models.Submission,
	project *models.Project,
) (*Item, error) {
	ctx, span := tracer.Start(ctx, "Manager.hydrate")
	defer span.End()

	db := m.DB.WithContext(ctx)

	var attachments []models.ProjectAttachment
	err := db.Where("project_id = ?", project.ID).Find(&attachments).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load attachments")
		return nil, err
	}

	var memberships []models.TeamMembership
	err = db.Where("project_id = ?", project.ID).Find(&memberships).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load roster")
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(memberships))
	for _, membership := range memberships {
		ids = append(ids, membership.UserID)
	}

	team := make([]visibility.Member, 0, len(memberships))
	if len(ids) > 0 {
		var users []models.User
		err = db.Where("id IN ?", ids).Find(&users).Error
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load roster users")
			return nil, err
		}
		userByID := make(map[uuid.UUID]models.User, len(users))
		for _, user := range users {
			userByID[user.ID] = user
		}

		for _, membership := range memberships {
			user, ok := userByID[membership.UserID]
			if !ok {
				continue
			}
			team = append(team, visibility.Member{Membership: membership, User: user})
		}
	}

	ledgerCount, err := voting.LedgerCount(ctx, db, submission.EventID, project.ID)
	if err != nil {
		return nil, err
	}

	return &Item{
		Submission:  *submission,
		Project:     *project,
		Attachments: attachments,
		Team:        team,
		VoteCount:   voting.EffectiveCount(ledgerCount, voting.Adjustment(project)),
	}, nil
}

// resolveUsers loads the leader and member rows, rejecting when any id
// does not resolve to an existing user.
func (m *Manager) resolveUsers(
	ctx context.Context,
	leaderID uuid.UUID,
	memberIDs []uuid.UUID,
) ([]visibility.Member, error) {
	db := m.DB.WithContext(ctx)

	ids := append([]uuid.UUID{leaderID}, memberIDs...)

	var users []models.User
	err := db.Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team users: %w", err)
	}
	if len(users) != len(ids) {
		return nil, rejectFields(map[string]string{
			"memberIds": "one or more ids do not resolve to an existing user",
		})
	}

	userByID := make(map[uuid.UUID]models.User, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	team := make([]visibility.Member, 0, len(ids))
	team = append(team, visibility.Member{
		Membership: models.TeamMembership{Role: models.TeamRoleLeader, UserID: leaderID},
		User:       userByID[leaderID],
	})
	for _, id := range memberIDs {
		team = append(team, visibility.Member{
			Membership: models.TeamMembership{Role: models.TeamRoleMember, UserID: id},
			User:       userByID[id],
		})
	}

	return team, nil
}

func (m *Manager) currentMembers(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	db := m.DB.WithContext(ctx)

	var rows []models.TeamMembership
	err := db.Where("project_id = ? AND role = ?", projectID, models.TeamRoleMember).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load current members: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}

	return ids, nil
}

// authorized reports whether the requester may mutate the submission:
// project owner, original submitter, or an administrator.
func authorized(requester *models.User, submission *models.Submission, project *models.Project) bool {
	if requester.Permissions.Admin || requester.Permissions.Organizer {
		return true
	}

	return requester.ID == project.OwnerUserID || requester.ID == submission.SubmitterID
}

// publiclyListed applies the unprivileged list filter: the project must
// be community authorized and the submitter must be an active user
// holding a confirmed registration.
func publiclyListed(
	submission models.Submission,
	project models.Project,
	userByID map[uuid.UUID]models.User,
	registered map[uuid.UUID]struct{},
) bool {
	if !project.CommunityAuthorized {
		return false
	}

	submitter, ok := userByID[submission.SubmitterID]
	if !ok {
		return false
	}
	if submitter.Active.Valid && !submitter.Active.V {
		return false
	}

	_, ok = registered[submission.SubmitterID]
	return ok
}

func applyProjectUpdate(project *models.Project, req types.SubmissionUpdateRequest) {
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Tagline != nil {
		project.Tagline = *req.Tagline
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.DemoURL != nil {
		project.DemoURL = *req.DemoURL
	}
	if req.CoverImageURL != nil {
		project.CoverImageURL = *req.CoverImageURL
	}
	if req.CommunityAuthorized != nil {
		project.CommunityAuthorized = *req.CommunityAuthorized
	}
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func createAttachments(tx *gorm.DB, projectID uuid.UUID, payloads []types.AttachmentPayload) error {
	rows := attachmentRows(projectID, payloads)
	if len(rows) == 0 {
		return nil
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create attachments: %w", err)
	}

	return nil
}

func attachmentRows(projectID uuid.UUID, payloads []types.AttachmentPayload) []models.ProjectAttachment {
	rows := make([]models.ProjectAttachment, 0, len(payloads))
	for _, payload := range payloads {
		rows = append(rows, models.ProjectAttachment{
			Name:        payload.Name,
			URL:         payload.URL,
			ContentType: payload.ContentType,
			ProjectID:   projectID,
			Order:       payload.Order,
		})
	}

	return rows
}
