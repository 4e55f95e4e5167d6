// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package manifest lists the UI text keys each page of the marketing site
// renders, so a page can fetch all of its strings in one batch.
package manifest

import (
	"slices"
	"sort"
)

// Page names.
const (
	PageLayout  = "layout" // navbar and footer, shared by every page
	PageHome    = "home"
	PageAbout   = "about"
	PageContact = "contact"
	PageFAQ     = "faq"
	PageTour    = "tour"
)

var pages = map[string][]string{
	PageLayout: {
		"navbar.home",
		"navbar.tours",
		"navbar.about",
		"navbar.faq",
		"navbar.contact",
		"navbar.book",
		"footer.company",
		"footer.description",
		"footer.quicklinks",
		"footer.contact",
		"footer.newsletter",
		"footer.newsletter.desc",
		"footer.newsletter.placeholder",
		"footer.newsletter.button",
		"footer.copyright",
	},
	PageHome: {
		"hero.title",
		"hero.subtitle",
		"hero.cta",
		"about.title",
		"about.body",
		"featured.title",
		"featured.subtitle",
		"featured.button",
		"why.title",
		"why.subtitle",
		"why.expertise.title",
		"why.expertise.desc",
		"why.safety.title",
		"why.safety.desc",
		"why.service.title",
		"why.service.desc",
		"testimonials.title",
		"cta.title",
		"cta.subtitle",
		"cta.button",
	},
	PageAbout: {
		"about.hero.title",
		"about.hero.subtitle",
		"about.story.title",
		"about.story.para1",
		"about.story.para2",
		"about.team.title",
		"about.team.subtitle",
		"about.values.title",
		"about.values.subtitle",
		"about.promise.title",
		"about.promise.sustainable.title",
		"about.promise.sustainable.desc",
		"about.promise.comfort.title",
		"about.promise.comfort.desc",
		"about.promise.experiences.title",
		"about.promise.experiences.desc",
	},
	PageContact: {
		"contact.hero.title",
		"contact.hero.subtitle",
		"contact.form.title",
		"contact.form.name.label",
		"contact.form.name.placeholder",
		"contact.form.email.label",
		"contact.form.email.placeholder",
		"contact.form.phone.label",
		"contact.form.phone.placeholder",
		"contact.form.tour.label",
		"contact.form.tour.placeholder",
		"contact.form.message.label",
		"contact.form.message.placeholder",
		"contact.form.submit",
		"contact.form.success.title",
		"contact.form.success.message",
		"contact.info.title",
		"contact.info.phone.title",
		"contact.info.phone.number",
		"contact.info.phone.desc",
		"contact.info.email.title",
		"contact.info.email.address",
		"contact.info.email.desc",
		"contact.info.whatsapp.title",
		"contact.info.whatsapp.number",
		"contact.info.whatsapp.desc",
		"contact.info.location.title",
		"contact.info.location.address",
		"contact.info.location.desc",
	},
	PageFAQ: {
		"faq.hero.title",
		"faq.hero.subtitle",
		"faq.section.title",
		"faq.section.subtitle",
		"faq.help.title",
		"faq.help.subtitle",
		"faq.help.call.title",
		"faq.help.call.desc",
		"faq.help.call.number",
		"faq.help.call.hours",
		"faq.help.email.title",
		"faq.help.email.desc",
		"faq.help.email.address",
		"faq.help.email.response",
		"faq.help.chat.title",
		"faq.help.chat.desc",
		"faq.help.chat.button",
		"faq.help.chat.availability",
		"faq.topics.title",
		"faq.topics.subtitle",
	},
	// The tour page has presentation-side fallbacks for keys that are not
	// seeded yet (tour.details.*, tour.itinerary.*).
	PageTour: {
		"tour.notFound.title",
		"tour.notFound.back",
		"tour.overview.title",
		"tour.inclusions.title",
		"tour.exclusions.title",
		"tour.itinerary.title",
		"tour.itinerary.day",
		"tour.gallery.title",
		"tour.price.perPerson",
		"tour.booking.button",
		"tour.details.duration",
		"tour.details.groupSize",
		"tour.details.maxPeople",
		"tour.details.difficulty",
		"tour.booking.success",
		"tour.booking.error",
		"tour.booking.form.title",
		"tour.booking.form.subtitle",
		"tour.booking.form.firstName",
		"tour.booking.form.lastName",
		"tour.booking.form.email",
		"tour.booking.form.phone",
		"tour.booking.form.message",
		"tour.booking.form.messagePlaceholder",
		"tour.booking.form.submit",
		"tour.related.title",
		"tour.related.viewDetails",
		"tour.details.age",
		"tour.details.ageRange",
		"tour.details.level",
		"tour.booking.form.guest",
		"tour.booking.form.guests",
		"tour.booking.form.travelDate",
		"tour.inclusions.guide",
		"tour.inclusions.meals",
		"tour.inclusions.transport",
		"tour.inclusions.equipment",
		"tour.exclusions.flights",
		"tour.exclusions.insurance",
		"tour.exclusions.personal",
		"tour.exclusions.tips",
		"tour.itinerary.arrival",
		"tour.itinerary.arrival.desc",
		"tour.itinerary.exploration",
		"tour.itinerary.exploration.desc",
		"tour.itinerary.departure",
		"tour.itinerary.departure.desc",
		"tour.description.fallback",
		"tour.title.fallback",
		"tour.price.contact",
		"tour.related.subtitle",
	},
}

// Keys returns the text keys of page. The returned slice may be modified.
func Keys(page string) ([]string, bool) {
	keys, ok := pages[page]
	if !ok {
		return nil, false
	}
	return slices.Clone(keys), true
}

// Pages returns all page names in alphabetical order.
func Pages() []string {
	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
