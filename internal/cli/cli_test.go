package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/novaera/showcase/carousel"
	"github.com/novaera/showcase/timing"
)

func run(args ...string) (string, error) {
	envFile := filepath.Join(GinkgoT().TempDir(), "none.env")

	out := bytes.NewBuffer(nil)
	root := NewRootCommand()
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--env-file", envFile))

	err := root.Execute()

	return out.String(), err
}

func line(t uint64, kind string, from, to int) string {
	return fmt.Sprintf("%8d ms  %-7s %d -> %d  %s\n",
		t, kind, from, to, carousel.DefaultSlides()[to].Title)
}

var _ = Describe("simulate", func() {
	It("should print every transition", func() {
		out, err := run("simulate", "--until", "8000", "--select", "4000:3")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(
			line(0, "start", 0, 0) +
				line(4000, "advance", 0, 1) +
				line(4000, "select", 1, 3) +
				line(8000, "advance", 3, 4) +
				line(8000, "stop", 4, 4)))
	})

	It("should wrap around after the last slide", func() {
		out, err := run("simulate", "--until", "20000")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(line(20000, "advance", 4, 0)))
	})

	It("should apply selections in time order", func() {
		out, err := run("simulate", "--until", "3000",
			"--select", "2000:4", "--select", "1000:2")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(
			line(0, "start", 0, 0) +
				line(1000, "select", 0, 2) +
				line(2000, "select", 2, 4) +
				line(3000, "stop", 4, 4)))
	})

	It("should take the interval from the flag", func() {
		out, err := run("simulate", "--until", "1000", "--interval", "500ms")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(line(500, "advance", 0, 1)))
		Expect(out).To(ContainSubstring(line(1000, "advance", 1, 2)))
	})

	It("should take the interval from the environment", func() {
		os.Setenv("SHOWCASE_CAROUSEL_INTERVAL", "2s")
		defer os.Unsetenv("SHOWCASE_CAROUSEL_INTERVAL")

		out, err := run("simulate", "--until", "2000")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(line(2000, "advance", 0, 1)))
	})

	It("should record a trace when asked", func() {
		path := filepath.Join(GinkgoT().TempDir(), "sim")
		os.Setenv("SHOWCASE_TRACE_PATH", path)
		defer os.Unsetenv("SHOWCASE_TRACE_PATH")

		_, err := run("simulate", "--until", "4000", "--trace")

		Expect(err).NotTo(HaveOccurred())
		Expect(path + ".sqlite3").To(BeAnExistingFile())
	})

	It("should fail on an out-of-range selection", func() {
		_, err := run("simulate", "--select", "4000:5")

		Expect(err).To(MatchError(carousel.ErrOutOfRange))
	})

	It("should fail on an interval shorter than a millisecond", func() {
		out, err := run("simulate", "--interval", "500us")

		Expect(err).To(MatchError(ContainSubstring("at least 1ms")))
		Expect(out).To(BeEmpty())
	})

	It("should fail on a malformed selection", func() {
		_, err := run("simulate", "--select", "4000")

		Expect(err).To(MatchError(ContainSubstring("time_ms:index")))
	})
})

var _ = Describe("slides", func() {
	It("should print the slides as JSON", func() {
		out, err := run("slides", "--json")
		Expect(err).NotTo(HaveOccurred())

		var slides []carousel.Slide
		Expect(json.Unmarshal([]byte(out), &slides)).To(Succeed())
		Expect(slides).To(Equal(carousel.DefaultSlides()))
	})

	It("should print the slide titles", func() {
		out, err := run("slides")

		Expect(err).NotTo(HaveOccurred())
		for _, s := range carousel.DefaultSlides() {
			Expect(out).To(ContainSubstring(s.Title))
		}
	})
})

var _ = Describe("configuration", func() {
	It("should fail on an invalid configuration", func() {
		os.Setenv("SHOWCASE_LOG_FORMAT", "xml")
		defer os.Unsetenv("SHOWCASE_LOG_FORMAT")

		_, err := run("slides")

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("parseSelections", func() {
	It("should sort by time and keep the order of equal times", func() {
		sels, err := parseSelections([]string{"30:1", "10:2", "10:0"})

		Expect(err).NotTo(HaveOccurred())
		Expect(sels).To(Equal([]selection{
			{at: 10, index: 2}, {at: 10, index: 0}, {at: 30, index: 1},
		}))
	})

	It("should refuse a negative time", func() {
		_, err := parseSelections([]string{"-5:1"})

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("intervalOf", func() {
	It("should keep whole milliseconds", func() {
		Expect(intervalOf(2500 * time.Millisecond)).To(
			Equal(timing.VTimeInMs(2500)))
	})

	It("should refuse zero and sub-millisecond intervals", func() {
		_, err := intervalOf(0)
		Expect(err).To(HaveOccurred())

		_, err = intervalOf(999 * time.Microsecond)
		Expect(err).To(HaveOccurred())
	})
})
