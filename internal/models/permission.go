package models

type Permission string

const (
	PermissionAdvanceRequest   Permission = "advance.request"
	PermissionAdvanceApprove   Permission = "advance.approve"
	PermissionBillAdd          Permission = "bill.add"
	PermissionRecordsViewAll   Permission = "records.view_all"
	PermissionEmployeeManage   Permission = "employee.manage"
	PermissionOffDayRequest    Permission = "offday.request"
	PermissionOffDayApprove    Permission = "offday.approve"
	PermissionAttendanceUpdate Permission = "attendance.update"
)

// RolePermissions сопоставляет роли и их права
var RolePermissions = map[Role][]Permission{
	RoleStaff: {
		PermissionAdvanceRequest,
		PermissionOffDayRequest,
	},
	RoleManager: {
		PermissionAdvanceRequest,
		PermissionBillAdd,
		PermissionOffDayRequest,
		PermissionOffDayApprove,
		PermissionAttendanceUpdate,
	},
	RoleAdmin: {
		// Администратор не запрашивает авансы сам
		PermissionAdvanceApprove,
		PermissionBillAdd,
		PermissionRecordsViewAll,
		PermissionEmployeeManage,
		PermissionOffDayRequest,
		PermissionOffDayApprove,
		PermissionAttendanceUpdate,
	},
}

func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
