// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package i18n

import (
	"errors"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported UI languages.
const (
	LangEnglish = "en"
	LangChinese = "zh"
)

// DefaultDocLanguage is used when the locale does not map to a supported language.
const DefaultDocLanguage = "English"

// ErrUnsupportedLanguage is returned for UI languages other than en and zh.
var ErrUnsupportedLanguage = errors.New("unsupported UI language")

// DocLanguages lists the accepted documentation languages.
var DocLanguages = []string{
	"Chinese", "English", "Japanese", "Korean", "French", "German", "Spanish", "Russian",
}

// UILanguages lists the accepted UI languages.
var UILanguages = []string{LangEnglish, LangChinese}

// LocaleEnvVars are consulted in order when detecting the locale.
var LocaleEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Translator resolves a message identifier into a formatted string.
type Translator interface {
	T(key string, args ...any) string
}

// Printer is a Translator backed by an x/text message printer.
type Printer struct {
	lang string
	p    *message.Printer
}

// T implements Translator.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Language returns the UI language code of the printer.
func (p *Printer) Language() string {
	return p.lang
}

var (
	catalogOnce sync.Once
	cat         catalog.Catalog
	catErr      error
)

func sharedCatalog() (catalog.Catalog, error) {
	catalogOnce.Do(func() {
		cat, catErr = newCatalog()
	})

	return cat, catErr
}

// New returns a Printer for the UI language lang (en or zh).
func New(lang string) (*Printer, error) {
	var tag language.Tag

	switch strings.ToLower(lang) {
	case LangEnglish:
		tag = language.English
	case LangChinese:
		tag = language.Chinese
	default:
		return nil, errors.Join(ErrUnsupportedLanguage, errors.New(lang))
	}

	c, err := sharedCatalog()
	if err != nil {
		return nil, err
	}

	return &Printer{
		lang: strings.ToLower(lang),
		p:    message.NewPrinter(tag, message.Catalog(c)),
	}, nil
}

// Default returns the English printer.
func Default() *Printer {
	p, err := New(LangEnglish)
	if err != nil {
		panic(err)
	}

	return p
}

// localeTag reads the locale environment and returns the parsed tag.
// ok is false when no usable locale is set.
func localeTag() (language.Tag, bool) {
	for _, name := range LocaleEnvVars {
		v := os.Getenv(name)
		if v == "" {
			continue
		}

		tag, ok := parseLocale(v)
		if ok {
			return tag, true
		}
	}

	return language.Und, false
}

// parseLocale turns a POSIX locale such as zh_CN.UTF-8 into a language tag.
func parseLocale(v string) (language.Tag, bool) {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}

	if v == "" || v == "C" || v == "POSIX" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return language.Und, false
	}

	return tag, true
}

// DetectUILanguage returns en or zh based on the locale environment.
func DetectUILanguage() string {
	tag, ok := localeTag()
	if !ok {
		return LangEnglish
	}

	if base, _ := tag.Base(); base.String() == LangChinese {
		return LangChinese
	}

	return LangEnglish
}

var docLanguages = map[string]string{
	"zh": "Chinese",
	"en": "English",
	"ja": "Japanese",
	"ko": "Korean",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"ru": "Russian",
}

// DetectDocLanguage maps the locale environment onto a documentation language.
func DetectDocLanguage() string {
	tag, ok := localeTag()
	if !ok {
		return DefaultDocLanguage
	}

	base, _ := tag.Base()
	if name, ok := docLanguages[base.String()]; ok {
		return name
	}

	return DefaultDocLanguage
}

// ValidDocLanguage reports whether lang is one of DocLanguages.
func ValidDocLanguage(lang string) bool {
	for _, l := range DocLanguages {
		if l == lang {
			return true
		}
	}

	return false
}
