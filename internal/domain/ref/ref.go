package ref

// Identifiers of entities owned by external collaborators (employee profile,
// org structure, shift catalog). They are never dereferenced or validated
// here; the distinct types exist so an employee ID cannot be passed where a
// shift ID is expected.

type EmployeeID string

func (id EmployeeID) String() string { return string(id) }
func (id EmployeeID) IsZero() bool   { return id == "" }

type DepartmentID string

func (id DepartmentID) String() string { return string(id) }
func (id DepartmentID) IsZero() bool   { return id == "" }

type PositionID string

func (id PositionID) String() string { return string(id) }
func (id PositionID) IsZero() bool   { return id == "" }

type ShiftID string

func (id ShiftID) String() string { return string(id) }
func (id ShiftID) IsZero() bool   { return id == "" }

type ScheduleRuleID string

func (id ScheduleRuleID) String() string { return string(id) }
func (id ScheduleRuleID) IsZero() bool   { return id == "" }
