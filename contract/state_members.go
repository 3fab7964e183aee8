package contract

import (
	"fmt"

	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// saveMember writes the encoded registry record.
func saveMember(st sdk.State, member *dao.Member) {
	st.Set(memberKey(member.Address), string(dao.EncodeMember(member)))
}

// loadMember returns the record or false when the account never deposited.
func loadMember(st sdk.State, addr sdk.Address) (*dao.Member, bool, error) {
	ptr, err := st.Get(memberKey(addr))
	if err != nil {
		return nil, false, err
	}
	if ptr == nil || *ptr == "" {
		return nil, false, nil
	}
	member, err := dao.DecodeMember([]byte(*ptr))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode member %s: %w", addr, err)
	}
	return member, true, nil
}
