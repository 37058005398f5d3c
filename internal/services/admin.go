package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"visual-library-backend/internal/analytics"
	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
)

// Collection names an admin-managed record collection.
type Collection string

const (
	CollectionProjects     Collection = "projects"
	CollectionTestimonials Collection = "testimonials"
	CollectionInquiries    Collection = "inquiries"
	CollectionReviews      Collection = "reviews"
	CollectionSuggestions  Collection = "suggestions"
	CollectionAudits       Collection = "audits"
	CollectionSubscribers  Collection = "subscribers"
	CollectionMilestones   Collection = "milestones"
	CollectionMessages     Collection = "messages"
)

// Collections lists every collection in overview order.
var Collections = []Collection{
	CollectionProjects, CollectionTestimonials, CollectionInquiries, CollectionReviews,
	CollectionSuggestions, CollectionAudits, CollectionSubscribers, CollectionMilestones,
	CollectionMessages,
}

var ErrUnknownCollection = fmt.Errorf("%w: unknown collection", errs.ErrBadRequest)

// ParseCollection rejects any name outside the closed set.
func ParseCollection(name string) (Collection, error) {
	c := Collection(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := collectionOps[c]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownCollection, name)
	}
	return c, nil
}

// ErrSiteOwnerOnly guards the site-wide collections.
var ErrSiteOwnerOnly = fmt.Errorf("%w: site owner access required", errs.ErrForbidden)

// AdminStore is the persistence surface behind the admin views.
type AdminStore interface {
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	ListTestimonials(ctx context.Context, ownerID uuid.UUID) ([]models.Testimonial, error)
	ListInquiries(ctx context.Context, ownerID uuid.UUID, siteWide bool) ([]models.Inquiry, error)
	ListOwnerReviews(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectReview, error)
	ListOwnerSuggestions(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectSuggestion, error)
	ListOwnerAudits(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectAudit, error)
	ListSubscriptions(ctx context.Context) ([]models.NewsletterSubscription, error)
	ListOwnerMilestones(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectMilestone, error)
	ListOwnerMessages(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectMessage, error)
	ListOwnerViews(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectView, error)
	ListOwnerClicks(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectClick, error)

	DeleteProject(ctx context.Context, projectID, ownerID uuid.UUID) error
	DeleteTestimonial(ctx context.Context, testimonialID, ownerID uuid.UUID) error
	DeleteInquiry(ctx context.Context, inquiryID, ownerID uuid.UUID, siteWide bool) error
	DeleteReview(ctx context.Context, reviewID, ownerID uuid.UUID) error
	DeleteSuggestion(ctx context.Context, suggestionID, ownerID uuid.UUID) error
	DeleteAudit(ctx context.Context, auditID, ownerID uuid.UUID) error
	DeleteSubscription(ctx context.Context, subscriptionID uuid.UUID) error
	DeleteMilestone(ctx context.Context, milestoneID, ownerID uuid.UUID) error
	ClearMessages(ctx context.Context, projectID, ownerID uuid.UUID) (int64, error)
}

// access is the caller's scope: their own records, plus site-wide records
// (newsletter subscribers, contact-form inquiries) for site owners.
type access struct {
	owner uuid.UUID
	site  bool
}

type listFunc func(ctx context.Context, s AdminStore, a access) (interface{}, int, error)
type deleteFunc func(ctx context.Context, s AdminStore, id uuid.UUID, a access) error

type ops struct {
	list   listFunc
	remove deleteFunc
	// siteOnly collections are hidden from owners without site access.
	siteOnly bool
}

func listOf[T any](fetch func(AdminStore, context.Context, uuid.UUID) ([]T, error), wrap func([]T) interface{}) listFunc {
	return func(ctx context.Context, s AdminStore, a access) (interface{}, int, error) {
		items, err := fetch(s, ctx, a.owner)
		if err != nil {
			return nil, 0, err
		}
		return wrap(items), len(items), nil
	}
}

func owned(remove func(AdminStore, context.Context, uuid.UUID, uuid.UUID) error) deleteFunc {
	return func(ctx context.Context, s AdminStore, id uuid.UUID, a access) error {
		return remove(s, ctx, id, a.owner)
	}
}

var collectionOps = map[Collection]ops{
	CollectionProjects: {
		list:   listOf(AdminStore.ListProjects, func(v []models.Project) interface{} { return models.ProjectListResponse{Projects: v} }),
		remove: owned(AdminStore.DeleteProject),
	},
	CollectionTestimonials: {
		list:   listOf(AdminStore.ListTestimonials, func(v []models.Testimonial) interface{} { return models.TestimonialListResponse{Testimonials: v} }),
		remove: owned(AdminStore.DeleteTestimonial),
	},
	CollectionInquiries: {
		list: func(ctx context.Context, s AdminStore, a access) (interface{}, int, error) {
			items, err := s.ListInquiries(ctx, a.owner, a.site)
			if err != nil {
				return nil, 0, err
			}
			return models.InquiryListResponse{Inquiries: items}, len(items), nil
		},
		remove: func(ctx context.Context, s AdminStore, id uuid.UUID, a access) error {
			return s.DeleteInquiry(ctx, id, a.owner, a.site)
		},
	},
	CollectionReviews: {
		list:   listOf(AdminStore.ListOwnerReviews, func(v []models.ProjectReview) interface{} { return models.ReviewListResponse{Reviews: v} }),
		remove: owned(AdminStore.DeleteReview),
	},
	CollectionSuggestions: {
		list:   listOf(AdminStore.ListOwnerSuggestions, func(v []models.ProjectSuggestion) interface{} { return models.SuggestionListResponse{Suggestions: v} }),
		remove: owned(AdminStore.DeleteSuggestion),
	},
	CollectionAudits: {
		list:   listOf(AdminStore.ListOwnerAudits, func(v []models.ProjectAudit) interface{} { return models.AuditListResponse{Audits: v} }),
		remove: owned(AdminStore.DeleteAudit),
	},
	CollectionSubscribers: {
		list: listOf(func(s AdminStore, ctx context.Context, _ uuid.UUID) ([]models.NewsletterSubscription, error) {
			return s.ListSubscriptions(ctx)
		}, func(v []models.NewsletterSubscription) interface{} { return models.SubscriptionListResponse{Subscriptions: v} }),
		remove: func(ctx context.Context, s AdminStore, id uuid.UUID, _ access) error {
			return s.DeleteSubscription(ctx, id)
		},
		siteOnly: true,
	},
	CollectionMilestones: {
		list:   listOf(AdminStore.ListOwnerMilestones, func(v []models.ProjectMilestone) interface{} { return models.MilestoneListResponse{Milestones: v} }),
		remove: owned(AdminStore.DeleteMilestone),
	},
	// Messages are deleted per conversation: the id is the project id.
	CollectionMessages: {
		list: listOf(AdminStore.ListOwnerMessages, func(v []models.ProjectMessage) interface{} { return models.MessageListResponse{Messages: v} }),
		remove: func(ctx context.Context, s AdminStore, projectID uuid.UUID, a access) error {
			_, err := s.ClearMessages(ctx, projectID, a.owner)
			return err
		},
	},
}

// Overview is the admin dashboard payload.
type Overview struct {
	Counts    map[Collection]int `json:"counts"`
	Analytics analytics.Summary  `json:"analytics"`
}

type AdminService struct {
	store      AdminStore
	siteOwners map[uuid.UUID]struct{}
	logger     zerolog.Logger
}

// NewAdminService scopes every caller to their own records. The listed site
// owners additionally manage subscribers and site-wide inquiries.
func NewAdminService(store AdminStore, siteOwners ...uuid.UUID) *AdminService {
	owners := make(map[uuid.UUID]struct{}, len(siteOwners))
	for _, id := range siteOwners {
		if id != uuid.Nil {
			owners[id] = struct{}{}
		}
	}
	return &AdminService{
		store:      store,
		siteOwners: owners,
		logger:     log.With().Str("service", "admin").Logger(),
	}
}

func (s *AdminService) IsSiteOwner(id uuid.UUID) bool {
	_, ok := s.siteOwners[id]
	return ok
}

func (s *AdminService) accessFor(owner uuid.UUID) access {
	return access{owner: owner, site: s.IsSiteOwner(owner)}
}

func (s *AdminService) lookup(c Collection, a access) (ops, error) {
	op, ok := collectionOps[c]
	if !ok {
		return ops{}, ErrUnknownCollection
	}
	if op.siteOnly && !a.site {
		return ops{}, ErrSiteOwnerOnly
	}
	return op, nil
}

// List returns the typed list response for one collection.
func (s *AdminService) List(ctx context.Context, c Collection, owner uuid.UUID) (interface{}, error) {
	a := s.accessFor(owner)
	op, err := s.lookup(c, a)
	if err != nil {
		return nil, err
	}
	out, _, err := op.list(ctx, s.store, a)
	return out, err
}

func (s *AdminService) Delete(ctx context.Context, c Collection, id, owner uuid.UUID) error {
	a := s.accessFor(owner)
	op, err := s.lookup(c, a)
	if err != nil {
		return err
	}
	if err := op.remove(ctx, s.store, id, a); err != nil {
		return err
	}
	s.logger.Info().Str("collection", string(c)).Str("id", id.String()).Msg("record deleted")
	return nil
}

// Overview fetches every collection plus the analytics inputs concurrently, then joins.
func (s *AdminService) Overview(ctx context.Context, owner uuid.UUID) (*Overview, error) {
	a := s.accessFor(owner)
	counts := make([]int, len(Collections))
	var (
		projects []models.Project
		views    []models.ProjectView
		clicks   []models.ProjectClick
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range Collections {
		g.Go(func() error {
			if c == CollectionProjects {
				list, err := s.store.ListProjects(gctx, owner)
				projects, counts[i] = list, len(list)
				return err
			}
			op := collectionOps[c]
			if op.siteOnly && !a.site {
				return nil
			}
			_, n, err := op.list(gctx, s.store, a)
			counts[i] = n
			return err
		})
	}
	g.Go(func() (err error) {
		views, err = s.store.ListOwnerViews(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		clicks, err = s.store.ListOwnerClicks(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}

	out := &Overview{Counts: make(map[Collection]int, len(Collections))}
	for i, c := range Collections {
		out.Counts[c] = counts[i]
	}
	out.Analytics = analytics.Summarize(projects, views, clicks)
	return out, nil
}

// Analytics aggregates views and clicks across the owner's projects.
func (s *AdminService) Analytics(ctx context.Context, owner uuid.UUID) (analytics.Summary, error) {
	var (
		projects []models.Project
		views    []models.ProjectView
		clicks   []models.ProjectClick
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		projects, err = s.store.ListProjects(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		views, err = s.store.ListOwnerViews(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		clicks, err = s.store.ListOwnerClicks(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Summary{}, fmt.Errorf("failed to load analytics: %w", err)
	}
	return analytics.Summarize(projects, views, clicks), nil
}
