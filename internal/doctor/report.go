package doctor

import (
	"os"

	"github.com/ilohealth/hcilo/internal/lock"
)

// ReportDirCheck verifies the report directory can be written.
type ReportDirCheck struct {
	Dir string
}

func (c *ReportDirCheck) Name() string     { return "report_dir" }
func (c *ReportDirCheck) Category() string { return "REPORT" }

func (c *ReportDirCheck) Run() CheckResult {
	info, err := os.Stat(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result(c, StatusWarn, "Report directory does not exist yet: "+c.Dir,
				"It will be created on the first run")
		}
		return result(c, StatusFail, "Cannot access report directory: "+c.Dir, "Check permissions")
	}
	if !info.IsDir() {
		return result(c, StatusFail, "Report path is not a directory: "+c.Dir,
			"Set report.dir to a directory")
	}

	f, err := os.CreateTemp(c.Dir, ".hcilo-doctor-*")
	if err != nil {
		return result(c, StatusFail, "Report directory is not writable: "+c.Dir, "Check permissions")
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	return result(c, StatusPass, "Report directory writable: "+c.Dir, "")
}

// ReportLockCheck reports a run holding the report directory lock.
type ReportLockCheck struct {
	Dir    string
	Prefix string
}

func (c *ReportLockCheck) Name() string     { return "report_lock" }
func (c *ReportLockCheck) Category() string { return "REPORT" }

func (c *ReportLockCheck) Run() CheckResult {
	if holder := lock.Holder(c.Dir, c.Prefix); holder != "" {
		return result(c, StatusWarn, "Report directory is locked by "+holder,
			"Wait for that run to finish, or remove "+lock.Path(c.Dir, c.Prefix)+" if it is stuck")
	}
	return result(c, StatusPass, "No run in progress", "")
}
