package md_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMD(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "MD Suite")
}
