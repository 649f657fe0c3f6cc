package model_test

import (
	"testing"
	"time"

	model "github.com/okian/talentscope/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestChildProfileAgeAt(t *testing.T) {
	convey.Convey("Given a child born on 2018-06-15", t, func() {
		p := model.ChildProfile{DateOfBirth: time.Date(2018, time.June, 15, 0, 0, 0, 0, time.UTC)}

		convey.Convey("When the birthday has not happened yet this year", func() {
			age := p.AgeAt(time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC))
			convey.So(age, convey.ShouldEqual, 5)
		})

		convey.Convey("When it is the birthday", func() {
			age := p.AgeAt(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
			convey.So(age, convey.ShouldEqual, 6)
		})

		convey.Convey("When the reference time precedes the birth date", func() {
			age := p.AgeAt(time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC))
			convey.So(age, convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given a profile without a birth date", t, func() {
		convey.So(model.ChildProfile{}.AgeAt(time.Now()), convey.ShouldEqual, 0)
	})
}

func TestSessionCompleted(t *testing.T) {
	convey.Convey("Given sessions in different states", t, func() {
		convey.So(model.Session{Status: model.SessionCompleted}.Completed(), convey.ShouldBeTrue)
		convey.So(model.Session{Status: model.SessionAbandoned}.Completed(), convey.ShouldBeFalse)
		convey.So(model.Session{}.Completed(), convey.ShouldBeFalse)
	})
}

func TestFloat(t *testing.T) {
	convey.Convey("Given a float helper", t, func() {
		p := model.Float(0.75)
		convey.So(p, convey.ShouldNotBeNil)
		convey.So(*p, convey.ShouldEqual, 0.75)
	})
}
