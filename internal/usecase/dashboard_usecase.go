package usecase

import (
	"context"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
)

// Dashboard is everything one role's landing view shows. Sections that do not
// apply to the role are left empty.
type Dashboard struct {
	Role   entity.Role             `json:"role"`
	User   *entity.User            `json:"user"`
	Alerts []entity.EmergencyAlert `json:"alerts"`

	Contacts []entity.User `json:"contacts"`

	// Citizen
	MyReports      []entity.Disaster    `json:"myReports,omitempty"`
	MyHelpRequests []entity.HelpRequest `json:"myHelpRequests,omitempty"`

	// Volunteer
	OpenTasks         []entity.Task `json:"openTasks,omitempty"`
	ActiveMissions    []entity.Task `json:"activeMissions,omitempty"`
	CompletedMissions []entity.Task `json:"completedMissions,omitempty"`

	// NGO Coordinator and Government Official
	Disasters        []entity.Disaster        `json:"disasters,omitempty"`
	Tasks            []entity.Task            `json:"tasks,omitempty"`
	ResourceRequests []entity.ResourceRequest `json:"resourceRequests,omitempty"`
	HelpRequests     []entity.HelpRequest     `json:"helpRequests,omitempty"`
	OnlineVolunteers []entity.User            `json:"onlineVolunteers,omitempty"`

	// Government Official
	Coverage []workflow.DisasterCoverage `json:"coverage,omitempty"`
	Briefing *Briefing                   `json:"briefing,omitempty"`
}

type DashboardUseCase struct {
	base
	briefing *BriefingUseCase
}

func NewDashboardUseCase(store repository.EntityStore, briefing *BriefingUseCase, opts ...Option) *DashboardUseCase {
	return &DashboardUseCase{
		base:     newBase(store, opts),
		briefing: briefing,
	}
}

type snapshotView struct {
	users        []entity.User
	disasters    []entity.Disaster
	tasks        []entity.Task
	requests     []entity.ResourceRequest
	helpRequests []entity.HelpRequest
	alerts       []entity.EmergencyAlert
}

func (uc *DashboardUseCase) read(ctx context.Context) (*snapshotView, error) {
	var (
		v   snapshotView
		err error
	)
	if v.users, err = load[entity.User](ctx, &uc.base, repository.UsersKey); err != nil {
		return nil, err
	}
	if v.disasters, err = load[entity.Disaster](ctx, &uc.base, repository.DisastersKey); err != nil {
		return nil, err
	}
	if v.tasks, err = load[entity.Task](ctx, &uc.base, repository.TasksKey); err != nil {
		return nil, err
	}
	if v.requests, err = load[entity.ResourceRequest](ctx, &uc.base, repository.RequestsKey); err != nil {
		return nil, err
	}
	if v.helpRequests, err = load[entity.HelpRequest](ctx, &uc.base, repository.HelpRequestsKey); err != nil {
		return nil, err
	}
	if v.alerts, err = load[entity.EmergencyAlert](ctx, &uc.base, repository.AlertsKey); err != nil {
		return nil, err
	}
	return &v, nil
}

// Compose builds the dashboard for the session's user. The role gate has
// already checked that the session may see it.
func (uc *DashboardUseCase) Compose(ctx context.Context, session *Session) (*Dashboard, error) {
	if err := Authorize(session); err != nil {
		return nil, err
	}

	v, err := uc.read(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := workflow.FindUser(v.users, session.UserID)
	if !ok {
		user = entity.User{ID: session.UserID, Role: session.Role}
	}

	d := &Dashboard{
		Role:     session.Role,
		User:     &user,
		Alerts:   workflow.AlertsNewestFirst(v.alerts),
		Contacts: workflow.Contacts(v.users, session.Role),
	}

	switch session.Role {
	case entity.RoleCitizen:
		d.MyReports = workflow.DisastersNewestFirst(workflow.ReportsBy(v.disasters, user.ID))
		d.MyHelpRequests = workflow.HelpRequestsBy(v.helpRequests, user.ID)

	case entity.RoleVolunteer:
		d.OpenTasks = workflow.OpenTasks(v.tasks)
		d.ActiveMissions = workflow.MissionsFor(v.tasks, user.ID, entity.TaskAccepted)
		d.CompletedMissions = workflow.MissionsFor(v.tasks, user.ID, entity.TaskCompleted)
		d.Disasters = workflow.DisastersNewestFirst(v.disasters)

	case entity.RoleNGO:
		d.Disasters = workflow.DisastersNewestFirst(v.disasters)
		d.Tasks = v.tasks
		d.ResourceRequests = workflow.ResourceRequestsBy(v.requests, user.ID)
		d.HelpRequests = v.helpRequests
		d.OnlineVolunteers = workflow.OnlineVolunteers(v.users)

	case entity.RoleGovernment:
		d.Disasters = workflow.DisastersNewestFirst(v.disasters)
		d.Coverage = workflow.Coverage(d.Disasters, v.tasks)
		d.ResourceRequests = v.requests
		d.HelpRequests = v.helpRequests
		if uc.briefing != nil {
			b, err := uc.briefing.Current(ctx)
			if err != nil {
				return nil, err
			}
			d.Briefing = b
		}
	}

	return d, nil
}
