package profile

import (
	"math"

	"github.com/amity-dating/amity/internal/db"
)

const (
	// LegalAge is the floor a stated minimum age preference cannot undercut
	// once the subject is of legal age.
	LegalAge = 18

	// Admins never see real distance.
	adminDistanceSentinel = 99999

	kmToMiles     = 0.6214
	earthRadiusKm = 6371.0
)

// effectiveMinAge clamps a stated minimum-age preference: once the subject is
// of legal age, the floor cannot go below it. A subject without a known age
// (age 0) keeps the stated preference.
func effectiveMinAge(statedMin, subjectAge int) int {
	if subjectAge >= LegalAge && statedMin < LegalAge {
		return LegalAge
	}
	return statedMin
}

// commonInterests iterates the viewer's interests in order and keeps those
// also present on the subject. Output order deliberately follows the viewer's
// own list.
func commonInterests(viewer, subject *db.User) []string {
	subjectHas := make(map[string]bool, len(subject.Interests))
	for _, interest := range subject.Interests {
		subjectHas[interest.Text] = true
	}

	var common []string
	for _, interest := range viewer.Interests {
		if subjectHas[interest.Text] {
			common = append(common, interest.Text)
		}
	}
	return common
}

// distanceBetween computes the distance shown to the viewer, in the viewer's
// preferred units, truncated to whole units. Admin viewers get the sentinel
// regardless of coordinates; missing coordinates on either side yield nil.
func distanceBetween(viewer, subject *db.User) *int {
	if viewer.Admin {
		d := adminDistanceSentinel
		return &d
	}

	if viewer.LocationLatitude == nil || viewer.LocationLongitude == nil ||
		subject.LocationLatitude == nil || subject.LocationLongitude == nil {
		return nil
	}

	km := haversineKm(
		*viewer.LocationLatitude, *viewer.LocationLongitude,
		*subject.LocationLatitude, *subject.LocationLongitude,
	)

	d := int(km)
	if viewer.Units == db.UnitImperial {
		d = int(km * kmToMiles)
	}
	return &d
}

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// compatible applies the matching gates: subject's gender must be in the
// viewer's preference set, the age check is mutual, and intentions must agree
// under the policy unless explicitly ignored. Users without a birth date
// cannot pass the mutual age check.
func (p *Projector) compatible(viewer, subject *db.User, ignoreIntention bool) bool {
	if !viewer.PreferredGenderSet()[subject.Gender] {
		return false
	}

	if viewer.DateOfBirth == nil || subject.DateOfBirth == nil {
		return false
	}
	now := p.now()
	viewerAge := ageAt(*viewer.DateOfBirth, now)
	subjectAge := ageAt(*subject.DateOfBirth, now)

	if viewerAge < subject.PreferredMinAge || viewerAge > subject.PreferredMaxAge {
		return false
	}
	if subjectAge < viewer.PreferredMinAge || subjectAge > viewer.PreferredMaxAge {
		return false
	}

	if !ignoreIntention && !p.intentions.Compatible(viewer.Intention, subject.Intention) {
		return false
	}
	return true
}
