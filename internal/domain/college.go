// Package domain holds the enumerations shared by the identity and report
// features.
package domain

// College is the closed enumeration of academic units plus the "unknown"
// sentinel for unclassified reports.
type College string

const (
	CollegeCAFENR  College = "CAFENR"
	CollegeCAS     College = "CAS"
	CollegeCCJ     College = "CCJ"
	CollegeCEMDS   College = "CEMDS"
	CollegeCED     College = "CED"
	CollegeCEIT    College = "CEIT"
	CollegeCOM     College = "COM"
	CollegeCON     College = "CON"
	CollegeCSPEAR  College = "CSPEAR"
	CollegeCTHM    College = "CTHM"
	CollegeCVMBS   College = "CVMBS"
	CollegeGSOLC   College = "GS-OLC"
	CollegeUnknown College = "unknown"
)

// Colleges lists every valid code including the unknown sentinel, in the
// order the UI presents them.
var Colleges = []College{
	CollegeCAFENR, CollegeCAS, CollegeCCJ, CollegeCEMDS, CollegeCED,
	CollegeCEIT, CollegeCOM, CollegeCON, CollegeCSPEAR, CollegeCTHM,
	CollegeCVMBS, CollegeGSOLC, CollegeUnknown,
}

var collegeLabels = map[College]string{
	CollegeCAFENR:  "College of Agriculture, Food, Environment, and Natural Resources (CAFENR)",
	CollegeCAS:     "College of Arts and Sciences (CAS)",
	CollegeCCJ:     "College of Criminal Justice (CCJ)",
	CollegeCEMDS:   "College of Economics, Management, and Development Studies (CEMDS)",
	CollegeCED:     "College of Education (CED)",
	CollegeCEIT:    "College of Engineering and Information Technology (CEIT)",
	CollegeCOM:     "College of Medicine (COM)",
	CollegeCON:     "College of Nursing (CON)",
	CollegeCSPEAR:  "College of Sports, Physical Education, and Recreation (CSPEAR)",
	CollegeCTHM:    "College of Tourism and Hospitality Management (CTHM)",
	CollegeCVMBS:   "College of Veterinary Medicine and Biomedical Sciences (CVMBS)",
	CollegeGSOLC:   "Graduate School and Open Learning College (GS-OLC)",
	CollegeUnknown: "Unknown / Other",
}

func (c College) Valid() bool {
	_, ok := collegeLabels[c]
	return ok
}

// Label returns the display name for the college code, or the code itself for
// values outside the enumeration.
func (c College) Label() string {
	if label, ok := collegeLabels[c]; ok {
		return label
	}
	return string(c)
}
