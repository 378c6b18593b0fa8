package navigate_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/navigate"
)

const eps = 1e-12

var _ = Describe("Navigator", func() {
	var (
		ctl   *fractal.Controller
		nav   *navigate.Navigator
		clock time.Time
	)

	advance := func(d time.Duration) { clock = clock.Add(d) }

	BeforeEach(func() {
		clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ctl = fractal.NewController(fractal.DefaultView())
		nav = navigate.New(ctl, navigate.DefaultSettings(), 640, 480,
			navigate.WithClock(func() time.Time { return clock }))
	})

	Describe("mouse", func() {
		It("pans by the drag vector on release", func() {
			nav.Update(navigate.Input{X: 100, Y: 100, Pressed: true})
			nav.Update(navigate.Input{X: 90, Y: 120, Released: true})

			v := ctl.View()
			Expect(v.CenterX).To(BeNumerically("~", -0.7+10*0.005, eps))
			Expect(v.CenterY).To(BeNumerically("~", 20*0.005, eps))
		})

		It("recenters on a double click and ignores its release", func() {
			nav.Update(navigate.Input{X: 420, Y: 240, Pressed: true})
			nav.Update(navigate.Input{X: 420, Y: 240, Released: true})
			advance(200 * time.Millisecond)
			nav.Update(navigate.Input{X: 420, Y: 240, Pressed: true})
			nav.Update(navigate.Input{X: 300, Y: 100, Released: true})

			v := ctl.View()
			Expect(v.CenterX).To(BeNumerically("~", -0.7+100*0.005, eps))
			Expect(v.CenterY).To(BeNumerically("~", 0, eps))
		})

		It("treats clicks further apart than the window as single clicks", func() {
			nav.Update(navigate.Input{X: 420, Y: 240, Pressed: true})
			nav.Update(navigate.Input{X: 420, Y: 240, Released: true})
			advance(800 * time.Millisecond)
			nav.Update(navigate.Input{X: 420, Y: 240, Pressed: true})
			nav.Update(navigate.Input{X: 420, Y: 240, Released: true})

			Expect(ctl.View().CenterX).To(Equal(fractal.DefaultCenterX))
		})

		It("does not treat the first click as a double click", func() {
			nav.Update(navigate.Input{X: 0, Y: 0, Pressed: true})
			nav.Update(navigate.Input{X: 0, Y: 0, Released: true})

			Expect(ctl.View()).To(Equal(fractal.DefaultView()))
		})

		It("zooms with the wheel", func() {
			nav.Update(navigate.Input{Wheel: 1})

			Expect(ctl.View().Scale).To(BeNumerically("~", 0.005/1.07, eps))
		})
	})

	Describe("zoom keys", func() {
		It("zooms in by the key step", func() {
			nav.Update(navigate.Input{Zoom: 1})

			Expect(ctl.View().Scale).To(BeNumerically("~", 0.005*math.Pow(1.07, -3), eps))
		})

		It("zooms finely with shift", func() {
			nav.Update(navigate.Input{Zoom: -1, Shift: true})

			Expect(ctl.View().Scale).To(BeNumerically("~", 0.005*math.Pow(1.07, 0.1), eps))
			Expect(nav.AutoZoom()).To(BeZero())
		})

		It("arms auto-zoom with alt and keeps applying it", func() {
			nav.Update(navigate.Input{Zoom: 1, Alt: true})
			Expect(nav.AutoZoom()).To(Equal(0.2))

			nav.Update(navigate.Input{})
			nav.Update(navigate.Input{})

			Expect(ctl.View().Scale).To(BeNumerically("~", 0.005*math.Pow(1.07, -0.6), eps))
		})

		It("stops auto-zoom on a zoom key without moving", func() {
			nav.Update(navigate.Input{Zoom: 1, Alt: true})
			before := ctl.View().Scale

			nav.Update(navigate.Input{Zoom: -1})

			Expect(nav.AutoZoom()).To(BeZero())
			Expect(ctl.View().Scale).To(Equal(before))
		})

		It("stops auto-zoom on the stop key", func() {
			nav.Update(navigate.Input{Zoom: -1, Alt: true})
			nav.Update(navigate.Input{Stop: true})

			Expect(nav.AutoZoom()).To(BeZero())
		})

		It("disarms auto-zoom when the scale clamps", func() {
			ctl = fractal.NewController(fractal.DefaultView(),
				fractal.WithLimits(fractal.Limits{MinScale: 0.004, MaxScale: 0.1}))
			nav = navigate.New(ctl, navigate.DefaultSettings(), 640, 480)

			nav.Update(navigate.Input{Zoom: 1, Alt: true})
			for i := 0; i < 100 && nav.AutoZoom() != 0; i++ {
				nav.Update(navigate.Input{})
			}

			Expect(nav.AutoZoom()).To(BeZero())
			Expect(ctl.View().Scale).To(Equal(0.004))
		})
	})

	Describe("keyboard", func() {
		It("pans by the pan step in pixels", func() {
			nav.Update(navigate.Input{PanX: 1})
			nav.Update(navigate.Input{PanY: 1})

			v := ctl.View()
			Expect(v.CenterX).To(BeNumerically("~", -0.7+10*0.005, eps))
			Expect(v.CenterY).To(BeNumerically("~", 10*0.005, eps))
		})

		It("resets the view and auto-zoom", func() {
			nav.Update(navigate.Input{Zoom: 1, Alt: true, PanX: -1})
			nav.Update(navigate.Input{Reset: true})

			Expect(nav.AutoZoom()).To(BeZero())
			Expect(ctl.View()).To(Equal(fractal.DefaultView()))
		})

		It("toggles the info overlay and requests a redraw", func() {
			eng, err := fractal.NewEngine(ctl, fractal.Classic(), compute.NewCPU(1))
			Expect(err).NotTo(HaveOccurred())
			_, _, err = eng.Render(make([]byte, 4*3*fractal.BytesPerPixel), 4, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctl.IsDirty()).To(BeFalse())

			Expect(nav.ShowInfo()).To(BeTrue())
			nav.Update(navigate.Input{ToggleInfo: true})

			Expect(nav.ShowInfo()).To(BeFalse())
			Expect(ctl.IsDirty()).To(BeTrue())
		})

		It("turns the info overlay back on when reset", func() {
			nav.Update(navigate.Input{ToggleInfo: true})
			Expect(nav.ShowInfo()).To(BeFalse())

			nav.Update(navigate.Input{Reset: true})

			Expect(nav.ShowInfo()).To(BeTrue())
		})

		It("only redraws when the info setting changes", func() {
			eng, err := fractal.NewEngine(ctl, fractal.Classic(), compute.NewCPU(1))
			Expect(err).NotTo(HaveOccurred())
			_, _, err = eng.Render(make([]byte, 4*3*fractal.BytesPerPixel), 4, 3)
			Expect(err).NotTo(HaveOccurred())

			nav.SetShowInfo(true)
			Expect(ctl.IsDirty()).To(BeFalse())

			nav.SetShowInfo(false)
			Expect(nav.ShowInfo()).To(BeFalse())
			Expect(ctl.IsDirty()).To(BeTrue())
		})

		It("reports quit before applying anything else", func() {
			res := nav.Update(navigate.Input{Quit: true, Zoom: 1})

			Expect(res.Quit).To(BeTrue())
			Expect(ctl.View()).To(Equal(fractal.DefaultView()))
		})

		It("passes dump and capture requests through", func() {
			res := nav.Update(navigate.Input{Dump: true, Capture: true})

			Expect(res.Dump).To(BeTrue())
			Expect(res.Capture).To(BeTrue())
		})
	})

	Describe("reporting", func() {
		It("maps the center pixel to the view center", func() {
			x, y := nav.PlanePoint(320, 240)

			Expect(x).To(BeNumerically("~", -0.7, eps))
			Expect(y).To(BeNumerically("~", 0, eps))
		})

		It("formats the info lines", func() {
			lines := nav.InfoLines(12500 * time.Microsecond)

			Expect(lines).To(Equal([]string{
				"x: -0.7",
				"y: 0",
				"scale: 0.005",
				"rendering time: 0.0125[sec]",
			}))
		})
	})
})
