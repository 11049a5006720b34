package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"taskplane.app/api-server/common/id"
	"taskplane.app/api-server/core/config"
	"taskplane.app/api-server/internal/apperr"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
	"taskplane.app/api-server/internal/store"
)

var _ = Describe("AuthService", func() {
	var (
		svc       service.AuthService
		mockUsers *mockUserStore
		mockOrgs  *mockOrganizationStore
		tokens    *service.TokenManager
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockUsers = &mockUserStore{}
		mockOrgs = &mockOrganizationStore{}
		tokens = service.NewTokenManager(config.JWTConfig{Secret: "test-secret", TTL: time.Hour})
		txRunner := &mockTxRunner{
			withTxFn: func(ctx context.Context, fn func(stores service.StoreProvider) error) error {
				return fn(&mockStoreProvider{users: mockUsers, orgs: mockOrgs})
			},
		}
		svc = service.NewAuthService(mockUsers, mockOrgs, txRunner, tokens)
		Expect(id.Init(1)).To(Succeed())
	})

	Describe("Register", func() {
		It("creates an organization and its admin user atomically", func() {
			var createdOrg *model.Organization
			mockOrgs.createFn = func(_ context.Context, org *model.Organization) error {
				createdOrg = org
				return nil
			}
			var createdUser *model.User
			mockUsers.createFn = func(_ context.Context, user *model.User) error {
				createdUser = user
				return nil
			}

			result, err := svc.Register(ctx, service.RegisterParams{
				Email:            "alice@acme.test",
				Password:         "password123",
				Name:             "Alice",
				OrganizationName: "Acme Corp",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(createdOrg).NotTo(BeNil())
			Expect(createdOrg.Slug).To(Equal("acme-corp"))
			Expect(createdUser).NotTo(BeNil())
			Expect(createdUser.Role).To(Equal(model.RoleOrganizationAdmin))
			Expect(createdUser.OrganizationID).To(Equal(createdOrg.ID))
			Expect(createdUser.PasswordHash).NotTo(Equal("password123"))

			userID, err := tokens.Verify(result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(userID).To(Equal(createdUser.ID))
		})

		It("rejects an email that is already registered", func() {
			mockUsers.getByEmailFn = func(_ context.Context, _ string) (*model.User, error) {
				return &model.User{ID: 1}, nil
			}

			_, err := svc.Register(ctx, service.RegisterParams{
				Email:            "alice@acme.test",
				Password:         "password123",
				Name:             "Alice",
				OrganizationName: "Acme",
			})
			Expect(apperr.KindOf(err)).To(Equal(apperr.KindConflict))
			Expect(mockOrgs.createCalls).To(BeZero())
			Expect(mockUsers.createCalls).To(BeZero())
		})

		It("maps a lost uniqueness race to a conflict", func() {
			mockUsers.createFn = func(_ context.Context, _ *model.User) error {
				return store.ErrDuplicate
			}

			_, err := svc.Register(ctx, service.RegisterParams{
				Email:            "alice@acme.test",
				Password:         "password123",
				Name:             "Alice",
				OrganizationName: "Acme",
			})
			Expect(apperr.KindOf(err)).To(Equal(apperr.KindConflict))
		})

		It("falls back to a default slug for unusable organization names", func() {
			var createdOrg *model.Organization
			mockOrgs.createFn = func(_ context.Context, org *model.Organization) error {
				createdOrg = org
				return nil
			}

			_, err := svc.Register(ctx, service.RegisterParams{
				Email:            "alice@acme.test",
				Password:         "password123",
				Name:             "Alice",
				OrganizationName: "!!!",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(createdOrg.Slug).To(Equal("org"))
		})
	})

	Describe("Login", func() {
		var hash string

		BeforeEach(func() {
			h, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			hash = string(h)
		})

		It("returns a token for valid credentials", func() {
			mockUsers.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
				Expect(email).To(Equal("alice@acme.test"))
				return &model.User{ID: 7, PasswordHash: hash, OrganizationID: 42}, nil
			}
			mockOrgs.getByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
				Expect(orgID).To(Equal(int64(42)))
				return &model.Organization{ID: 42}, nil
			}

			result, err := svc.Login(ctx, "alice@acme.test", "password123")
			Expect(err).NotTo(HaveOccurred())

			userID, err := tokens.Verify(result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(userID).To(Equal(int64(7)))
			Expect(result.Organization.ID).To(Equal(int64(42)))
		})

		It("does not reveal whether the account exists", func() {
			_, unknownErr := svc.Login(ctx, "nobody@acme.test", "password123")
			Expect(apperr.KindOf(unknownErr)).To(Equal(apperr.KindUnauthorized))

			mockUsers.getByEmailFn = func(_ context.Context, _ string) (*model.User, error) {
				return &model.User{ID: 7, PasswordHash: hash}, nil
			}
			_, badPassErr := svc.Login(ctx, "alice@acme.test", "wrong")
			Expect(apperr.KindOf(badPassErr)).To(Equal(apperr.KindUnauthorized))

			Expect(apperr.MessageOf(unknownErr)).To(Equal(apperr.MessageOf(badPassErr)))
		})

		It("propagates store failures", func() {
			mockUsers.getByEmailFn = func(_ context.Context, _ string) (*model.User, error) {
				return nil, errors.New("db error")
			}

			_, err := svc.Login(ctx, "alice@acme.test", "password123")
			Expect(err).To(HaveOccurred())
			Expect(apperr.KindOf(err)).To(Equal(apperr.KindInternal))
		})
	})

	Describe("Profile", func() {
		It("returns the user with their organization", func() {
			mockUsers.getByIDFn = func(_ context.Context, userID int64) (*model.User, error) {
				Expect(userID).To(Equal(int64(7)))
				return &model.User{ID: 7, OrganizationID: 42}, nil
			}
			mockOrgs.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
				return &model.Organization{ID: 42}, nil
			}

			profile, err := svc.Profile(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.User.ID).To(Equal(int64(7)))
			Expect(profile.Organization.ID).To(Equal(int64(42)))
		})

		It("maps a missing user to not found", func() {
			_, err := svc.Profile(ctx, 999)
			Expect(apperr.KindOf(err)).To(Equal(apperr.KindNotFound))
		})
	})
})
