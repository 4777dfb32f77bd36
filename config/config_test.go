package config

import (
	"errors"
	"testing"
	"time"

	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/pagelinks/pagelinks/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("filter.fuzzy_threshold")
			So(result, ShouldEqual, "filter_fuzzy_threshold")
		})

		Convey("Env names carry the application prefix", func() {
			f := Default[key.PagesCeiling]
			So(f.Env(), ShouldEqual, "PAGELINKS_PAGES_CEILING")
		})
	})
}

func TestTimeout(t *testing.T) {
	Convey("Timeout", t, func() {
		_ = Setup()

		Convey("Uses the configured seconds", func() {
			viper.Set(key.NetworkTimeout, 3)
			So(Timeout(), ShouldEqual, 3*time.Second)
		})

		Convey("Falls back to the default for non-positive values", func() {
			viper.Set(key.NetworkTimeout, 0)
			So(Timeout(), ShouldEqual, 10*time.Second)
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given the registered fields", t, func() {
		Convey("A known key is found", func() {
			field, err := Lookup(key.ScrapeWorkers)
			So(err, ShouldBeNil)
			So(field.Value, ShouldEqual, 1)
		})

		Convey("A typo suggests the closest key", func() {
			_, err := Lookup("pages.celing")
			var unknown *UnknownKeyError
			So(errors.As(err, &unknown), ShouldBeTrue)
			So(unknown.Closest, ShouldEqual, key.PagesCeiling)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Values are parsed to the type of the default", t, func() {
		workers := Default[key.ScrapeWorkers]
		v, err := workers.Parse([]string{"4"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 4)

		_, err = workers.Parse([]string{"four"})
		So(err, ShouldNotBeNil)

		fingerprint := Default[key.NetworkFingerprint]
		v, err = fingerprint.Parse([]string{"true"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, true)

		mode := Default[key.ScrapeMode]
		v, err = mode.Parse([]string{"fuzzy"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "fuzzy")

		_, err = mode.Parse(nil)
		So(err, ShouldNotBeNil)
	})
}
