package e2e_test

import (
	"context"
	"math/big"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smallyu/go-sss-recover/internal/config"
	"github.com/smallyu/go-sss-recover/internal/crypto/curves"
	"github.com/smallyu/go-sss-recover/internal/crypto/polynomial"
	"github.com/smallyu/go-sss-recover/internal/protocol/reconstruct"
	"github.com/smallyu/go-sss-recover/internal/share"
	"github.com/smallyu/go-sss-recover/pkg/sss"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Reconstruction", func() {

	var (
		params sss.Parameters
		logs   *observer.ObservedLogs
		logger *zap.Logger
	)

	BeforeEach(func() {
		params = config.Default()
		params.Workers = 4

		var core zapcore.Core
		core, logs = observer.New(zapcore.InfoLevel)
		logger = zap.New(core)
	})

	load := func(name string) *sss.PointSet {
		set, err := share.Load(filepath.Join("testdata", name))
		Expect(err).NotTo(HaveOccurred())
		return set
	}

	Describe("Shares on a single quadratic", func() {

		It("decodes mixed bases and recovers the constant term", func() {
			set := load("quadratic.yaml")
			Expect(set.Points).To(Equal([]sss.Point{{X: 1, Y: 8}, {X: 2, Y: 13}, {X: 3, Y: 20}}))

			report, err := reconstruct.Run(context.Background(), set, &params, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Subsets).To(HaveLen(1))

			secret, ok := report.Secret()
			Expect(ok).To(BeTrue())
			Expect(secret).To(Equal(int64(5)))
			Expect(logs.FilterMessage("subsets agree").Len()).To(Equal(1))
		})

		It("fingerprints the agreed secret", func() {
			params.Curve = curves.NameEd25519
			report, err := reconstruct.Run(context.Background(), load("quadratic.yaml"), &params, logger)
			Expect(err).NotTo(HaveOccurred())

			want, err := curves.FingerprintHex(&curves.Ed25519Curve{}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Curve).To(Equal(curves.NameEd25519))
			Expect(report.Fingerprint).To(Equal(want))
		})
	})

	Describe("Shares on no common quadratic", func() {

		It("reports every distinct candidate", func() {
			set := load("disagree.json")
			Expect(set.Points).To(Equal([]sss.Point{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 3, Y: 7}, {X: 6, Y: 42}}))
			Expect(set.K).To(Equal(3))

			params.CrossCheck = true
			report, err := reconstruct.Run(context.Background(), set, &params, logger)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Subsets).To(HaveLen(4))
			Expect(report.Consistent()).To(BeFalse())
			Expect(report.Verdict.Values).To(HaveLen(4))
			Expect(report.Verdict.Values).To(ContainElements(int64(1), int64(2), int64(3)))
			Expect(report.Majority).To(BeNil())
			Expect(logs.FilterMessage("subsets disagree, shares may be inconsistent").Len()).To(Equal(1))
		})
	})

	Describe("A corrupted share", func() {

		It("is blamed by the majority", func() {
			report, err := reconstruct.Run(context.Background(), load("corrupted.json"), &params, logger)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Consistent()).To(BeFalse())
			Expect(report.Verdict.Counts).To(HaveKeyWithValue(int64(5), 4))
			Expect(report.Majority).NotTo(BeNil())
			Expect(*report.Majority).To(Equal(int64(5)))
			Expect(report.Suspects).To(HaveLen(1))
			Expect(report.Suspects[0].X).To(Equal(int64(4)))
		})
	})

	Describe("Generated shares", func() {

		var (
			secret *big.Int
			set    *sss.PointSet
		)

		BeforeEach(func() {
			secret = big.NewInt(31337)
			poly, err := polynomial.New(nil, 3, secret, big.NewInt(100))
			Expect(err).NotTo(HaveOccurred())
			points, err := poly.Shares([]int64{1, 2, 3, 4, 5, 6, 7})
			Expect(err).NotTo(HaveOccurred())
			set, err = sss.NewPointSet(points, 4)
			Expect(err).NotTo(HaveOccurred())
		})

		It("survive an encode and decode round trip in every format", func() {
			for _, format := range []share.Format{share.FormatJSON, share.FormatYAML} {
				rec, err := share.ToRecord(set, 7)
				Expect(err).NotTo(HaveOccurred())
				data, err := share.Encode(rec, format)
				Expect(err).NotTo(HaveOccurred())

				parsed, err := share.Parse(data, format)
				Expect(err).NotTo(HaveOccurred())
				decoded, err := share.FromRecord(parsed)
				Expect(err).NotTo(HaveOccurred())
				Expect(decoded.Points).To(Equal(set.Points), format.String())

				report, err := reconstruct.Run(context.Background(), decoded, &params, logger)
				Expect(err).NotTo(HaveOccurred())
				Expect(report.Subsets).To(HaveLen(35))
				got, ok := report.Secret()
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(secret.Int64()))
			}
		})

		It("agree with the exact rational constant term", func() {
			params.CrossCheck = true
			report, err := reconstruct.Run(context.Background(), set, &params, logger)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range report.Subsets {
				Expect(r.Exact).To(Equal("31337"))
				Expect(r.PrecisionLoss).To(BeFalse())
			}
		})
	})
})
