package service_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"taskplane.app/api-server/core/config"
	"taskplane.app/api-server/internal/service"
)

var _ = Describe("TokenManager", func() {
	var tokens *service.TokenManager

	BeforeEach(func() {
		tokens = service.NewTokenManager(config.JWTConfig{Secret: "test-secret", TTL: time.Hour})
	})

	It("round-trips the user id", func() {
		signed, err := tokens.Issue(42)
		Expect(err).NotTo(HaveOccurred())

		userID, err := tokens.Verify(signed)
		Expect(err).NotTo(HaveOccurred())
		Expect(userID).To(Equal(int64(42)))
	})

	It("rejects tokens signed with a different secret", func() {
		other := service.NewTokenManager(config.JWTConfig{Secret: "other-secret", TTL: time.Hour})
		signed, err := other.Issue(42)
		Expect(err).NotTo(HaveOccurred())

		_, err = tokens.Verify(signed)
		Expect(err).To(MatchError(service.ErrInvalidToken))
	})

	It("rejects expired tokens", func() {
		expired := service.NewTokenManager(config.JWTConfig{Secret: "test-secret", TTL: -time.Minute})
		signed, err := expired.Issue(42)
		Expect(err).NotTo(HaveOccurred())

		_, err = tokens.Verify(signed)
		Expect(err).To(MatchError(service.ErrInvalidToken))
	})

	It("rejects garbage", func() {
		_, err := tokens.Verify("not-a-token")
		Expect(err).To(MatchError(service.ErrInvalidToken))
	})
})
