// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package account manages user credentials.
//
// Passwords are stored as bcrypt hashes. Login failures never reveal
// whether the username or the password was wrong.
//
//	svc := account.NewService(repos.Users)
//	user, err := svc.Register(ctx, "alice", "correct horse")
//	user, err = svc.Login(ctx, "alice", "correct horse")
package account
