package showcase_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestShowcase(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Showcase Suite")
}
